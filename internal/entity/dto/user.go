package dto

import (
	"encoding/json"

	"collectibles/internal/entity/common"
)

// Accepted wire names for UserInfo fields that changed across API versions.
var (
	userAvatarAliases       = common.Aliases{"avatar", "avatar_url", "headimg"}
	userMoneyAliases        = common.Aliases{"money", "balance"}
	userServiceFeeAliases   = common.Aliases{"service_fee", "service_fee_balance", "fee_money"}
	userStaticIncomeAliases = common.Aliases{"static_income", "static_money", "income"}
	userRealNameAliases     = common.Aliases{"real_name_status", "is_real_name", "auth_status"}
	userInviteAliases       = common.Aliases{"invite_code", "invitation_code"}
)

// UserInfo is the cached profile snapshot kept alongside the token.
type UserInfo struct {
	ID             common.ID     `json:"id"`
	Nickname       string        `json:"nickname"`
	Mobile         string        `json:"mobile"`
	Avatar         string        `json:"avatar"`
	Money          common.Amount `json:"money"`
	ServiceFee     common.Amount `json:"service_fee"`
	StaticIncome   common.Amount `json:"static_income"`
	Score          common.Int    `json:"score"`
	Level          common.Int    `json:"level"`
	RealNameStatus common.Int    `json:"real_name_status"`
	InviteCode     string        `json:"invite_code"`
	HasPayPassword common.Flag   `json:"has_pay_password"`
}

// UnmarshalJSON coalesces the legacy aliases into the canonical fields.
func (u *UserInfo) UnmarshalJSON(data []byte) error {
	type plain UserInfo
	var base plain
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	base.Avatar = userAvatarAliases.String(fields)
	base.InviteCode = userInviteAliases.String(fields)
	_ = userMoneyAliases.Decode(fields, &base.Money)
	_ = userServiceFeeAliases.Decode(fields, &base.ServiceFee)
	_ = userStaticIncomeAliases.Decode(fields, &base.StaticIncome)

	// is_real_name is a boolean on older servers.
	if raw, name, ok := userRealNameAliases.Resolve(fields); ok {
		if name == "is_real_name" {
			var flag common.Flag
			_ = json.Unmarshal(raw, &flag)
			base.RealNameStatus = RealNameNone
			if flag {
				base.RealNameStatus = RealNameApproved
			}
		} else {
			_ = json.Unmarshal(raw, &base.RealNameStatus)
		}
	}

	*u = UserInfo(base)
	return nil
}

// Real-name verification states.
const (
	RealNameNone     common.Int = 0
	RealNameApproved common.Int = 1
	RealNamePending  common.Int = 2
	RealNameRejected common.Int = 3
)

// RealNameStatus is returned by the real-name status endpoint.
type RealNameStatus struct {
	Status   common.Int `json:"status"`
	RealName string     `json:"real_name"`
	IDCard   string     `json:"id_card"`
	Reason   string     `json:"reason"`
}

// StatusText describes Status for display.
func (s RealNameStatus) StatusText() string {
	switch s.Status {
	case RealNameApproved:
		return "approved"
	case RealNamePending:
		return "pending"
	case RealNameRejected:
		return "rejected"
	default:
		return "not submitted"
	}
}

// RealNameRequest is the real-name submission form.
type RealNameRequest struct {
	RealName    string
	IDCard      string
	IDCardFront string
	IDCardBack  string
}

// LogQuery filters balance, service fee and static income logs.
type LogQuery struct {
	common.BaseParams
	Type string
}

// BalanceLogItem is one ledger entry.
type BalanceLogItem struct {
	ID         common.ID     `json:"id"`
	Money      common.Amount `json:"money"`
	Before     common.Amount `json:"before"`
	After      common.Amount `json:"after"`
	Memo       string        `json:"memo"`
	Type       string        `json:"type"`
	CreateTime common.Unix   `json:"createtime"`
}

// ChangePasswordRequest updates the login or pay password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldpassword"`
	NewPassword string `json:"newpassword"`
	Type        string `json:"type,omitempty"`
}

// Password kinds accepted by ChangePasswordRequest.Type.
const (
	PasswordLogin = "login"
	PasswordPay   = "pay"
)
