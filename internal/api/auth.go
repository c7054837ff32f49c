package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/transport"
	"collectibles/internal/validate"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 20
)

// CheckIn logs in, registering the mobile first if it is new. A successful
// check-in starts the session.
func (c *Client) CheckIn(ctx context.Context, req dto.CheckInRequest, opts ...Option) (*common.Response[dto.CheckInResult], error) {
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Code = strings.TrimSpace(req.Code)
	var credential error
	if req.Code != "" {
		credential = invalid("captcha", validate.SMSCode(req.Code))
	} else {
		credential = invalid("password", validate.Password(req.Password, minPasswordLen, maxPasswordLen))
	}
	if err := firstError(invalid("mobile", validate.Phone(req.Mobile)), credential); err != nil {
		return nil, err
	}

	resp, err := invoke[dto.CheckInResult](ctx, c, endpoint.UserCheckIn, payload{json: req}, opts)
	if err != nil {
		return resp, err
	}
	if strings.TrimSpace(resp.Data.Token) == "" {
		c.log.WithField("mobile", req.Mobile).Error("check_in_missing_token")
		return resp, fmt.Errorf("check-in succeeded without a token")
	}
	user := resp.Data.UserInfo
	if err := c.session.Login(ctx, resp.Data.Token, &user); err != nil {
		c.log.WithError(err).Error("session_login_failed")
		return resp, fmt.Errorf("store session: %w", err)
	}
	return resp, nil
}

// SendSMS asks the platform to text a verification code for event.
func (c *Client) SendSMS(ctx context.Context, req dto.SMSRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Event == "" {
		req.Event = dto.SMSEventLogin
	}
	if err := invalid("mobile", validate.Phone(req.Mobile)); err != nil {
		return nil, err
	}
	form := transport.NewFormData().
		Append("mobile", req.Mobile).
		Append("event", req.Event)
	return invoke[json.RawMessage](ctx, c, endpoint.SMSSend, payload{form: form}, opts)
}

// RetrievePassword resets the login password by SMS code. Any stored session
// is cleared afterwards.
func (c *Client) RetrievePassword(ctx context.Context, req dto.RetrievePasswordRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Captcha = strings.TrimSpace(req.Captcha)
	if err := firstError(
		invalid("mobile", validate.Phone(req.Mobile)),
		invalid("captcha", validate.SMSCode(req.Captcha)),
		invalid("newpassword", validate.Password(req.NewPassword, minPasswordLen, maxPasswordLen)),
	); err != nil {
		return nil, err
	}

	resp, err := invoke[json.RawMessage](ctx, c, endpoint.UserRetrievePassword, payload{json: req}, opts)
	if err != nil {
		return resp, err
	}
	if clearErr := c.session.Clear(ctx); clearErr != nil {
		c.log.WithError(clearErr).Warn("session_clear_after_reset_failed")
	}
	return resp, nil
}

// Logout tells the server to drop the token. The local session is cleared
// whatever the server answers.
func (c *Client) Logout(ctx context.Context, opts ...Option) (*common.Response[json.RawMessage], error) {
	defer func() {
		if err := c.session.Clear(ctx); err != nil {
			c.log.WithError(err).Warn("session_clear_after_logout_failed")
		}
	}()

	token, _ := c.resolveToken(ctx, opts)
	if token == "" {
		c.log.Debug("logout_without_token")
		return nil, nil
	}
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.UserLogout, payload{}, append(append([]Option(nil), opts...), WithToken(token)))
	if err != nil {
		c.log.WithError(err).Info("logout_remote_failed")
	}
	return resp, err
}
