package api

import (
	"context"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
)

// Page returns a static CMS page: about, privacy or agreement.
func (c *Client) Page(ctx context.Context, kind string, opts ...Option) (*common.Response[dto.CmsPage], error) {
	switch kind {
	case dto.PageAbout, dto.PagePrivacy, dto.PageAgreement:
	default:
		return nil, invalidf("type", "unknown page %q", kind)
	}
	return invoke[dto.CmsPage](ctx, c, endpoint.CmsPage, payload{query: map[string]string{"type": kind}}, opts)
}

// HelpCategories lists help-center categories.
func (c *Client) HelpCategories(ctx context.Context, opts ...Option) (*common.Response[[]dto.HelpCategory], error) {
	return invoke[[]dto.HelpCategory](ctx, c, endpoint.HelpCategories, payload{}, opts)
}

// HelpQuestions lists the questions of a category, or all of them for 0.
func (c *Client) HelpQuestions(ctx context.Context, categoryID common.ID, opts ...Option) (*common.Response[[]dto.HelpQuestion], error) {
	query := map[string]string{}
	if categoryID > 0 {
		query["category_id"] = categoryID.String()
	}
	return invoke[[]dto.HelpQuestion](ctx, c, endpoint.HelpQuestions, payload{query: query}, opts)
}

// Notices pages announcements and messages. Read state is tracked locally by
// the notify package.
func (c *Client) Notices(ctx context.Context, q dto.NoticeQuery, opts ...Option) (*common.Response[common.Page[dto.Notice]], error) {
	query := queryOf(q.BaseParams, map[string]string{"type": q.Type})
	return invoke[common.Page[dto.Notice]](ctx, c, endpoint.NoticeList, payload{query: query}, opts)
}

// NoticeDetail returns one notice.
func (c *Client) NoticeDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.Notice], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose a notice")
	}
	return invoke[dto.Notice](ctx, c, endpoint.NoticeDetail, payload{query: idQuery("id", id)}, opts)
}
