package dto

// CheckInRequest logs in or registers in one call. Code is the SMS code when
// logging in by captcha; Password when logging in by password.
type CheckInRequest struct {
	Mobile     string `json:"mobile"`
	Password   string `json:"password,omitempty"`
	Code       string `json:"captcha,omitempty"`
	InviteCode string `json:"invite_code,omitempty"`
}

// CheckInResult is the payload of a successful check-in.
type CheckInResult struct {
	Token    string   `json:"token"`
	UserInfo UserInfo `json:"userinfo"`
}

// SMSRequest asks the platform to send a verification code.
type SMSRequest struct {
	Mobile string
	Event  string
}

// SMS events.
const (
	SMSEventRegister      = "register"
	SMSEventLogin         = "mobilelogin"
	SMSEventResetPassword = "resetpwd"
	SMSEventChangeMobile  = "changemobile"
)

// RetrievePasswordRequest resets the login password by SMS code.
type RetrievePasswordRequest struct {
	Mobile      string `json:"mobile"`
	Captcha     string `json:"captcha"`
	NewPassword string `json:"newpassword"`
}
