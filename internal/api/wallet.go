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

	"github.com/shopspring/decimal"
)

// 提现规则：主余额与静态收益分别限制
var withdrawRules = map[string]validate.AmountRule{
	dto.BalanceMain: {
		Min:   decimal.NewFromInt(1),
		Max:   decimal.NewFromInt(50000),
		Scale: 2,
	},
	dto.BalanceStaticIncome: {
		Min:   decimal.NewFromInt(100),
		Scale: 0,
	},
}

// WithdrawRule returns the amount rule for a balance type.
func WithdrawRule(balanceType string) (validate.AmountRule, bool) {
	rule, ok := withdrawRules[balanceType]
	return rule, ok
}

// CompanyAccounts lists the platform accounts a recharge can be paid into.
func (c *Client) CompanyAccounts(ctx context.Context, opts ...Option) (*common.Response[[]dto.CompanyAccountItem], error) {
	return invoke[[]dto.CompanyAccountItem](ctx, c, endpoint.RechargeCompanyAccounts, payload{}, opts)
}

// SubmitRecharge records an offline recharge. The screenshot is optional and
// its field is omitted entirely when empty.
func (c *Client) SubmitRecharge(ctx context.Context, req dto.RechargeRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.Amount = strings.TrimSpace(req.Amount)
	if err := CheckRecharge(req); err != nil {
		return nil, err
	}

	form := transport.NewFormData().
		Append("recharge_id", req.CompanyAccountID.String()).
		Append("money", req.Amount)
	if shot := strings.TrimSpace(req.Screenshot); shot != "" {
		form.Append("image", shot)
	}
	return invoke[json.RawMessage](ctx, c, endpoint.RechargeSubmit, payload{form: form}, opts)
}

// CheckRecharge runs the local checks SubmitRecharge applies, so callers can
// reject bad input before uploading a screenshot.
func CheckRecharge(req dto.RechargeRequest) error {
	if req.CompanyAccountID <= 0 {
		return invalidf("recharge_id", "please choose a receiving account")
	}
	return invalid("money", validate.Amount(strings.TrimSpace(req.Amount), validate.MoneyRule))
}

// RechargeOrders pages the user's recharge orders.
func (c *Client) RechargeOrders(ctx context.Context, q dto.RecordQuery, opts ...Option) (*common.Response[common.Page[dto.RechargeOrderItem]], error) {
	query := queryOf(q.BaseParams, map[string]string{"status": q.Status})
	return invoke[common.Page[dto.RechargeOrderItem]](ctx, c, endpoint.RechargeOrders, payload{query: query}, opts)
}

// RechargeOrderDetail returns one recharge order.
func (c *Client) RechargeOrderDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.RechargeOrderItem], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an order")
	}
	return invoke[dto.RechargeOrderItem](ctx, c, endpoint.RechargeOrderDetail, payload{query: idQuery("id", id)}, opts)
}

// SubmitWithdraw withdraws from the main balance or static income. The cached
// profile is refreshed afterwards on a best-effort basis.
func (c *Client) SubmitWithdraw(ctx context.Context, req dto.WithdrawRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.Amount = strings.TrimSpace(req.Amount)
	if req.BalanceType == "" {
		req.BalanceType = dto.BalanceMain
	}
	rule, ok := WithdrawRule(req.BalanceType)
	if !ok {
		return nil, invalidf("balance_type", "unknown balance type %q", req.BalanceType)
	}
	if req.PaymentAccountID <= 0 {
		return nil, invalidf("payment_account_id", "please choose a payment account")
	}
	if err := firstError(
		invalid("money", validate.Amount(req.Amount, rule)),
		invalid("pay_password", validate.PayPassword(req.PayPassword)),
	); err != nil {
		return nil, err
	}

	resp, err := invoke[json.RawMessage](ctx, c, endpoint.WithdrawSubmit, payload{json: req}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// WithdrawRecords pages the user's withdrawals.
func (c *Client) WithdrawRecords(ctx context.Context, q dto.RecordQuery, opts ...Option) (*common.Response[common.Page[dto.WithdrawRecordItem]], error) {
	query := queryOf(q.BaseParams, map[string]string{"status": q.Status})
	return invoke[common.Page[dto.WithdrawRecordItem]](ctx, c, endpoint.WithdrawRecords, payload{query: query}, opts)
}

// Transfer moves main balance to another user.
func (c *Client) Transfer(ctx context.Context, req dto.TransferRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.ToMobile = strings.TrimSpace(req.ToMobile)
	req.Amount = strings.TrimSpace(req.Amount)
	req.Remark = strings.TrimSpace(req.Remark)
	if err := firstError(
		invalid("to_mobile", validate.Phone(req.ToMobile)),
		invalid("money", validate.Amount(req.Amount, validate.MoneyRule)),
		invalid("pay_password", validate.PayPassword(req.PayPassword)),
	); err != nil {
		return nil, err
	}
	if user, ok := c.session.User(ctx); ok && user.Mobile != "" && user.Mobile == req.ToMobile {
		return nil, invalidf("to_mobile", "you cannot transfer to yourself")
	}

	resp, err := invoke[json.RawMessage](ctx, c, endpoint.TransferSubmit, payload{json: req}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}
