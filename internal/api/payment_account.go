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

// PaymentAccounts lists the user's withdrawal accounts.
func (c *Client) PaymentAccounts(ctx context.Context, opts ...Option) (*common.Response[[]dto.PaymentAccountItem], error) {
	return invoke[[]dto.PaymentAccountItem](ctx, c, endpoint.PaymentAccountList, payload{}, opts)
}

// AddPaymentAccount adds a bank card, Alipay or WeChat account.
func (c *Client) AddPaymentAccount(ctx context.Context, req dto.PaymentAccountRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	form, err := paymentAccountForm(req)
	if err != nil {
		return nil, err
	}
	return invoke[json.RawMessage](ctx, c, endpoint.PaymentAccountAdd, payload{form: form}, opts)
}

// EditPaymentAccount updates an existing account.
func (c *Client) EditPaymentAccount(ctx context.Context, req dto.PaymentAccountRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	if req.ID <= 0 {
		return nil, invalidf("id", "please choose an account to edit")
	}
	form, err := paymentAccountForm(req)
	if err != nil {
		return nil, err
	}
	return invoke[json.RawMessage](ctx, c, endpoint.PaymentAccountEdit, payload{form: form}, opts)
}

// DeletePaymentAccount removes an account.
func (c *Client) DeletePaymentAccount(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an account")
	}
	return invoke[json.RawMessage](ctx, c, endpoint.PaymentAccountDelete, payload{form: idForm("id", id)}, opts)
}

// SetDefaultPaymentAccount marks an account as the withdrawal default.
func (c *Client) SetDefaultPaymentAccount(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an account")
	}
	return invoke[json.RawMessage](ctx, c, endpoint.PaymentAccountSetDefault, payload{form: idForm("id", id)}, opts)
}

func paymentAccountForm(req dto.PaymentAccountRequest) (*transport.FormData, error) {
	req.AccountName = strings.TrimSpace(req.AccountName)
	req.AccountNo = strings.ReplaceAll(strings.TrimSpace(req.AccountNo), " ", "")
	req.BankName = strings.TrimSpace(req.BankName)

	checks := []error{invalid("account_name", validate.RealName(req.AccountName))}
	switch req.Type {
	case dto.PaymentBankCard:
		checks = append(checks,
			invalid("bank_name", validate.Required(req.BankName, "the bank name")),
			invalid("account_no", validate.BankCard(req.AccountNo)),
		)
	case dto.PaymentAlipay:
		checks = append(checks, invalid("account_no", validate.Required(req.AccountNo, "your Alipay account")))
	case dto.PaymentWechat:
		if req.AccountNo == "" && strings.TrimSpace(req.QRCode) == "" {
			checks = append(checks, invalidf("qrcode", "please enter your WeChat account or upload a payment QR code"))
		}
	default:
		return nil, invalidf("type", "please choose an account type")
	}
	if err := firstError(checks...); err != nil {
		return nil, err
	}

	form := transport.NewFormData()
	if req.ID > 0 {
		form.Append("id", req.ID.String())
	}
	form.Append("type", req.Type).
		Append("account_name", req.AccountName).
		Append("account_no", req.AccountNo)
	if req.Type == dto.PaymentBankCard {
		form.Append("bank_name", req.BankName).
			Append("bank_branch", strings.TrimSpace(req.BankBranch))
	}
	if qr := strings.TrimSpace(req.QRCode); qr != "" {
		form.Append("qrcode", qr)
	}
	return form, nil
}
