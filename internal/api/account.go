package api

import (
	"context"
	"encoding/json"
	"strings"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/transport"
	"collectibles/internal/validate"
)

// Profile fetches the current user and refreshes the cached snapshot.
func (c *Client) Profile(ctx context.Context, opts ...Option) (*common.Response[dto.UserInfo], error) {
	resp, err := invoke[dto.UserInfo](ctx, c, endpoint.AccountProfile, payload{}, opts)
	if err != nil {
		return resp, err
	}
	if setErr := c.session.SetUser(ctx, resp.Data); setErr != nil {
		c.log.WithError(setErr).Warn("session_user_update_failed")
	}
	return resp, nil
}

// UpdateAvatar sets the avatar to an uploaded image path.
func (c *Client) UpdateAvatar(ctx context.Context, avatar string, opts ...Option) (*common.Response[json.RawMessage], error) {
	avatar = strings.TrimSpace(avatar)
	if err := invalid("avatar", validate.Required(avatar, "an avatar image")); err != nil {
		return nil, err
	}
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.AccountAvatar, payload{form: transport.NewFormData().Append("avatar", avatar)}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// UpdateNickname renames the user.
func (c *Client) UpdateNickname(ctx context.Context, nickname string, opts ...Option) (*common.Response[json.RawMessage], error) {
	nickname = strings.TrimSpace(nickname)
	if err := invalid("nickname", validate.Nickname(nickname)); err != nil {
		return nil, err
	}
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.AccountNickname, payload{form: transport.NewFormData().Append("nickname", nickname)}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// ChangePassword changes the login or payment password. Changing the login
// password ends the session.
func (c *Client) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	if req.Type == "" {
		req.Type = dto.PasswordLogin
	}
	var check func(string) validate.Result
	switch req.Type {
	case dto.PasswordLogin:
		check = func(v string) validate.Result { return validate.Password(v, minPasswordLen, maxPasswordLen) }
	case dto.PasswordPay:
		check = validate.PayPassword
	default:
		return nil, invalidf("type", "unknown password type %q", req.Type)
	}
	if err := firstError(
		invalid("oldpassword", validate.Required(req.OldPassword, "your current password")),
		invalid("newpassword", check(req.NewPassword)),
	); err != nil {
		return nil, err
	}
	if req.OldPassword == req.NewPassword {
		return nil, invalidf("newpassword", "new password must differ from the current one")
	}

	resp, err := invoke[json.RawMessage](ctx, c, endpoint.AccountChangePassword, payload{json: req}, opts)
	if err != nil {
		return resp, err
	}
	if req.Type == dto.PasswordLogin {
		if clearErr := c.session.Clear(ctx); clearErr != nil {
			c.log.WithError(clearErr).Warn("session_clear_after_password_change_failed")
		}
	} else {
		c.refreshProfile(ctx, opts)
	}
	return resp, nil
}

// RealNameStatus returns the real-name verification state.
func (c *Client) RealNameStatus(ctx context.Context, opts ...Option) (*common.Response[dto.RealNameStatus], error) {
	return invoke[dto.RealNameStatus](ctx, c, endpoint.AccountRealNameStatus, payload{}, opts)
}

// SubmitRealName submits name, ID number and both ID photos for review.
func (c *Client) SubmitRealName(ctx context.Context, req dto.RealNameRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.RealName = strings.TrimSpace(req.RealName)
	req.IDCard = strings.ToUpper(strings.TrimSpace(req.IDCard))
	if err := firstError(
		invalid("real_name", validate.RealName(req.RealName)),
		invalid("id_card", validate.IDCard(req.IDCard)),
		invalid("id_card_front", validate.Required(req.IDCardFront, "the front photo of your ID card")),
		invalid("id_card_back", validate.Required(req.IDCardBack, "the back photo of your ID card")),
	); err != nil {
		return nil, err
	}

	form := transport.NewFormData().
		Append("real_name", req.RealName).
		Append("id_card", req.IDCard).
		Append("id_card_front", req.IDCardFront).
		Append("id_card_back", req.IDCardBack)
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.AccountRealNameSubmit, payload{form: form}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// BalanceLog pages the main balance ledger.
func (c *Client) BalanceLog(ctx context.Context, q dto.LogQuery, opts ...Option) (*common.Response[common.Page[dto.BalanceLogItem]], error) {
	return c.ledger(ctx, endpoint.AccountBalanceLog, q, opts)
}

// ServiceFeeLog pages the service fee ledger.
func (c *Client) ServiceFeeLog(ctx context.Context, q dto.LogQuery, opts ...Option) (*common.Response[common.Page[dto.BalanceLogItem]], error) {
	return c.ledger(ctx, endpoint.AccountServiceFeeLog, q, opts)
}

// StaticIncomeLog pages the static income ledger.
func (c *Client) StaticIncomeLog(ctx context.Context, q dto.LogQuery, opts ...Option) (*common.Response[common.Page[dto.BalanceLogItem]], error) {
	return c.ledger(ctx, endpoint.AccountStaticIncomeLog, q, opts)
}

func (c *Client) ledger(ctx context.Context, name string, q dto.LogQuery, opts []Option) (*common.Response[common.Page[dto.BalanceLogItem]], error) {
	query := queryOf(q.BaseParams, map[string]string{"type": q.Type})
	return invoke[common.Page[dto.BalanceLogItem]](ctx, c, name, payload{query: query}, opts)
}
