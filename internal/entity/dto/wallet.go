package dto

import "collectibles/internal/entity/common"

// CompanyAccountItem is a platform receiving account used for offline recharge.
type CompanyAccountItem struct {
	ID          common.ID   `json:"id"`
	Type        string      `json:"type"`
	BankName    string      `json:"bank_name"`
	AccountName string      `json:"account_name"`
	AccountNo   string      `json:"account_no"`
	QRCode      string      `json:"qrcode"`
	Remark      string      `json:"remark"`
	Status      common.Flag `json:"status"`
}

// PaymentAccountItem is a user's own withdrawal account.
type PaymentAccountItem struct {
	ID          common.ID   `json:"id"`
	Type        string      `json:"type"`
	BankName    string      `json:"bank_name"`
	BankBranch  string      `json:"bank_branch"`
	AccountName string      `json:"account_name"`
	AccountNo   string      `json:"account_no"`
	QRCode      string      `json:"qrcode"`
	IsDefault   common.Flag `json:"is_default"`
}

// Payment account kinds.
const (
	PaymentBankCard = "bank_card"
	PaymentAlipay   = "alipay"
	PaymentWechat   = "wechat"
)

// PaymentAccountRequest adds or edits a payment account. ID is zero on add.
type PaymentAccountRequest struct {
	ID          common.ID
	Type        string
	BankName    string
	BankBranch  string
	AccountName string
	AccountNo   string
	QRCode      string
}

// RechargeRequest submits an offline recharge order.
type RechargeRequest struct {
	CompanyAccountID common.ID
	Amount           string
	// Screenshot is the uploaded payment proof URL, optional.
	Screenshot string
}

// RechargeOrderItem is one recharge order.
type RechargeOrderItem struct {
	ID           common.ID     `json:"id"`
	OrderNo      string        `json:"order_no"`
	Money        common.Amount `json:"money"`
	Status       common.Int    `json:"status"`
	StatusText   string        `json:"status_text"`
	Image        string        `json:"image"`
	Remark       string        `json:"remark"`
	CreateTime   common.Unix   `json:"createtime"`
	AuditTime    common.Unix   `json:"audittime"`
	AccountName  string        `json:"account_name"`
	RechargeType string        `json:"recharge_type"`
}

// RecordQuery pages order-like records, optionally filtered by status.
type RecordQuery struct {
	common.BaseParams
	Status string
}

// Balance kinds a withdrawal can draw from.
const (
	BalanceMain         = "money"
	BalanceStaticIncome = "static_income"
)

// WithdrawRequest withdraws from one balance to a payment account.
type WithdrawRequest struct {
	PaymentAccountID common.ID `json:"payment_account_id"`
	Amount           string    `json:"money"`
	PayPassword      string    `json:"pay_password"`
	BalanceType      string    `json:"balance_type"`
}

// WithdrawRecordItem is one withdrawal record.
type WithdrawRecordItem struct {
	ID          common.ID     `json:"id"`
	OrderNo     string        `json:"order_no"`
	Money       common.Amount `json:"money"`
	Fee         common.Amount `json:"fee"`
	ActualMoney common.Amount `json:"actual_money"`
	BalanceType string        `json:"balance_type"`
	Status      common.Int    `json:"status"`
	StatusText  string        `json:"status_text"`
	Reason      string        `json:"reason"`
	CreateTime  common.Unix   `json:"createtime"`
}

// TransferRequest moves balance to another user identified by mobile.
type TransferRequest struct {
	ToMobile    string `json:"to_mobile"`
	Amount      string `json:"money"`
	PayPassword string `json:"pay_password"`
	Remark      string `json:"remark,omitempty"`
}
