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

var collectionSorts = map[string]bool{"": true, "price_asc": true, "price_desc": true, "new": true}

// CollectionItems pages the marketplace.
func (c *Client) CollectionItems(ctx context.Context, q dto.CollectionQuery, opts ...Option) (*common.Response[common.Page[dto.CollectionItem]], error) {
	if !collectionSorts[q.Sort] {
		return nil, invalidf("sort", "unknown sort order %q", q.Sort)
	}
	extra := map[string]string{
		"keyword": strings.TrimSpace(q.Keyword),
		"sort":    q.Sort,
	}
	if q.ArtistID > 0 {
		extra["artist_id"] = q.ArtistID.String()
	}
	return invoke[common.Page[dto.CollectionItem]](ctx, c, endpoint.CollectionItems, payload{query: queryOf(q.BaseParams, extra)}, opts)
}

// CollectionDetail returns one marketplace item.
func (c *Client) CollectionDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.CollectionItem], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an item")
	}
	return invoke[dto.CollectionItem](ctx, c, endpoint.CollectionDetail, payload{query: idQuery("id", id)}, opts)
}

// BuyCollection purchases an item with the main balance or service fee
// balance.
func (c *Client) BuyCollection(ctx context.Context, req dto.BuyRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	if req.ItemID <= 0 {
		return nil, invalidf("item_id", "please choose an item")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, invalidf("quantity", "quantity must be at least 1")
	}
	switch req.PayType {
	case "":
		req.PayType = dto.PayBalance
	case dto.PayBalance, dto.PayServiceFee:
	default:
		return nil, invalidf("pay_type", "unknown payment method %q", req.PayType)
	}

	form := transport.NewFormData().
		Append("item_id", req.ItemID.String()).
		AppendInt("quantity", req.Quantity).
		Append("pay_type", req.PayType)
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.CollectionBuy, payload{form: form}, opts)
	if err == nil {
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// MyCollections pages the items the user owns.
func (c *Client) MyCollections(ctx context.Context, q dto.RecordQuery, opts ...Option) (*common.Response[common.Page[dto.UserCollection]], error) {
	query := queryOf(q.BaseParams, map[string]string{"status": q.Status})
	return invoke[common.Page[dto.UserCollection]](ctx, c, endpoint.CollectionMine, payload{query: query}, opts)
}

// Consign lists an owned item for resale at price.
func (c *Client) Consign(ctx context.Context, req dto.ConsignRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.Price = strings.TrimSpace(req.Price)
	if req.UserCollectionID <= 0 {
		return nil, invalidf("user_collection_id", "please choose an item to consign")
	}
	if err := invalid("price", validate.Amount(req.Price, validate.MoneyRule)); err != nil {
		return nil, err
	}
	form := transport.NewFormData().
		Append("user_collection_id", req.UserCollectionID.String()).
		Append("price", req.Price)
	resp, err := invoke[json.RawMessage](ctx, c, endpoint.CollectionConsign, payload{form: form}, opts)
	if err == nil {
		// Listing fees are charged from the service fee balance.
		c.refreshProfile(ctx, opts)
	}
	return resp, err
}

// CancelConsignment withdraws a resale listing.
func (c *Client) CancelConsignment(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose a listing")
	}
	return invoke[json.RawMessage](ctx, c, endpoint.CollectionCancelConsign, payload{form: idForm("id", id)}, opts)
}

// Consignments pages the user's resale listings.
func (c *Client) Consignments(ctx context.Context, q dto.RecordQuery, opts ...Option) (*common.Response[common.Page[dto.ConsignmentItem]], error) {
	query := queryOf(q.BaseParams, map[string]string{"status": q.Status})
	return invoke[common.Page[dto.ConsignmentItem]](ctx, c, endpoint.CollectionConsignments, payload{query: query}, opts)
}

// Deliver requests physical delivery of an owned item, falling back to the
// default address when none is given.
func (c *Client) Deliver(ctx context.Context, req dto.DeliverRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	if req.UserCollectionID <= 0 {
		return nil, invalidf("user_collection_id", "please choose an item to deliver")
	}
	if req.AddressID <= 0 {
		if token, _ := c.resolveToken(ctx, opts); token == "" {
			return nil, ErrNotLoggedIn
		}
		req.AddressID = c.lookupDefaultAddress(ctx, opts).ID
	}
	if req.AddressID <= 0 {
		return nil, invalidf("address_id", "please add a shipping address first")
	}
	form := transport.NewFormData().
		Append("user_collection_id", req.UserCollectionID.String()).
		Append("address_id", req.AddressID.String())
	return invoke[json.RawMessage](ctx, c, endpoint.CollectionDeliver, payload{form: form}, opts)
}

// Artists pages the creators.
func (c *Client) Artists(ctx context.Context, page common.BaseParams, opts ...Option) (*common.Response[common.Page[dto.Artist]], error) {
	return invoke[common.Page[dto.Artist]](ctx, c, endpoint.ArtistList, payload{query: page.Query()}, opts)
}

// ArtistDetail returns one creator.
func (c *Client) ArtistDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.Artist], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an artist")
	}
	return invoke[dto.Artist](ctx, c, endpoint.ArtistDetail, payload{query: idQuery("id", id)}, opts)
}
