package api

import (
	"context"
	"strconv"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
)

// SignInInfo returns today's sign-in state and streak.
func (c *Client) SignInInfo(ctx context.Context, opts ...Option) (*common.Response[dto.SignInInfoData], error) {
	return invoke[dto.SignInInfoData](ctx, c, endpoint.SignInInfo, payload{}, opts)
}

// SignIn performs today's sign-in. Rewards land in a balance, so the cached
// profile is refreshed.
func (c *Client) SignIn(ctx context.Context, opts ...Option) (*common.Response[dto.SignInResult], error) {
	resp, err := invoke[dto.SignInResult](ctx, c, endpoint.SignInDo, payload{}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// SignInRewards pages past sign-in rewards.
func (c *Client) SignInRewards(ctx context.Context, page common.BaseParams, opts ...Option) (*common.Response[common.Page[dto.SignInRewardItem]], error) {
	return invoke[common.Page[dto.SignInRewardItem]](ctx, c, endpoint.SignInRewards, payload{query: page.Query()}, opts)
}

// TeamOverview summarises the referral team.
func (c *Client) TeamOverview(ctx context.Context, opts ...Option) (*common.Response[dto.TeamOverviewData], error) {
	return invoke[dto.TeamOverviewData](ctx, c, endpoint.TeamOverview, payload{}, opts)
}

// TeamMembers pages referred users. Level 0 means every level.
func (c *Client) TeamMembers(ctx context.Context, q dto.TeamMemberQuery, opts ...Option) (*common.Response[common.Page[dto.TeamMember]], error) {
	if q.Level < 0 {
		return nil, invalidf("level", "level must not be negative")
	}
	extra := map[string]string{}
	if q.Level > 0 {
		extra["level"] = strconv.FormatInt(q.Level, 10)
	}
	return invoke[common.Page[dto.TeamMember]](ctx, c, endpoint.TeamMembers, payload{query: queryOf(q.BaseParams, extra)}, opts)
}

// PromotionCard returns the referral share card.
func (c *Client) PromotionCard(ctx context.Context, opts ...Option) (*common.Response[dto.PromotionCard], error) {
	return invoke[dto.PromotionCard](ctx, c, endpoint.TeamPromotionCard, payload{}, opts)
}
