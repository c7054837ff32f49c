package api

import (
	"context"
	"encoding/json"
	"strings"

	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/validate"

	"github.com/sirupsen/logrus"
)

// Products pages the shop catalogue.
func (c *Client) Products(ctx context.Context, q dto.ProductQuery, opts ...Option) (*common.Response[common.Page[dto.Product]], error) {
	extra := map[string]string{"keyword": strings.TrimSpace(q.Keyword)}
	if q.CategoryID > 0 {
		extra["category_id"] = q.CategoryID.String()
	}
	return invoke[common.Page[dto.Product]](ctx, c, endpoint.ShopProducts, payload{query: queryOf(q.BaseParams, extra)}, opts)
}

// ProductDetail returns one product.
func (c *Client) ProductDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.Product], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose a product")
	}
	return invoke[dto.Product](ctx, c, endpoint.ShopProductDetail, payload{query: idQuery("id", id)}, opts)
}

// CreateShopOrder places an order. Without an address the default address is
// looked up first; a physical product with no resolvable address is rejected
// before the order is sent.
func (c *Client) CreateShopOrder(ctx context.Context, req dto.ShopOrderRequest, opts ...Option) (*common.Response[dto.ShopOrderItem], error) {
	if req.ProductID <= 0 {
		return nil, invalidf("product_id", "please choose a product")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, invalidf("quantity", "quantity must be at least 1")
	}
	req.Remark = strings.TrimSpace(req.Remark)

	if req.AddressID <= 0 {
		if token, _ := c.resolveToken(ctx, opts); token == "" {
			return nil, ErrNotLoggedIn
		}
		addr := c.lookupDefaultAddress(ctx, opts)
		req.AddressID = addr.ID
	}
	if req.Physical && req.AddressID <= 0 {
		c.log.WithField("product_id", req.ProductID).Info("shop_order_missing_address")
		return nil, invalidf("address_id", "please add a shipping address first")
	}

	return invoke[dto.ShopOrderItem](ctx, c, endpoint.ShopOrderCreate, payload{json: req}, opts)
}

// ShopOrders pages the user's shop orders.
func (c *Client) ShopOrders(ctx context.Context, q dto.ShopOrderQuery, opts ...Option) (*common.Response[common.Page[dto.ShopOrderItem]], error) {
	query := queryOf(q.BaseParams, map[string]string{"status": q.Status})
	return invoke[common.Page[dto.ShopOrderItem]](ctx, c, endpoint.ShopOrderList, payload{query: query}, opts)
}

// ShopOrderDetail returns one shop order.
func (c *Client) ShopOrderDetail(ctx context.Context, id common.ID, opts ...Option) (*common.Response[dto.ShopOrderItem], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an order")
	}
	return invoke[dto.ShopOrderItem](ctx, c, endpoint.ShopOrderDetail, payload{query: idQuery("id", id)}, opts)
}

// CancelShopOrder cancels an unpaid order.
func (c *Client) CancelShopOrder(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	return c.shopOrderAction(ctx, endpoint.ShopOrderCancel, id, opts)
}

// ConfirmShopOrder confirms receipt of a shipped order.
func (c *Client) ConfirmShopOrder(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	return c.shopOrderAction(ctx, endpoint.ShopOrderConfirm, id, opts)
}

// DeleteShopOrder hides a finished or cancelled order.
func (c *Client) DeleteShopOrder(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	return c.shopOrderAction(ctx, endpoint.ShopOrderDelete, id, opts)
}

func (c *Client) shopOrderAction(ctx context.Context, name string, id common.ID, opts []Option) (*common.Response[json.RawMessage], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an order")
	}
	resp, err := invoke[json.RawMessage](ctx, c, name, payload{form: idForm("id", id)}, opts)
	if err == nil {
		c.log.WithFields(logrus.Fields{"endpoint": name, "order_id": id}).Info("shop_order_updated")
	}
	return resp, err
}

// Addresses lists the user's shipping addresses.
func (c *Client) Addresses(ctx context.Context, opts ...Option) (*common.Response[[]dto.Address], error) {
	return invoke[[]dto.Address](ctx, c, endpoint.AddressList, payload{}, opts)
}

// DefaultAddress returns the default shipping address. Data is the zero
// Address when the user has none.
func (c *Client) DefaultAddress(ctx context.Context, opts ...Option) (*common.Response[dto.Address], error) {
	return invoke[dto.Address](ctx, c, endpoint.AddressDefault, payload{}, opts)
}

// AddAddress creates a shipping address.
func (c *Client) AddAddress(ctx context.Context, req dto.AddressRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	req.ID = 0
	if err := checkAddress(&req); err != nil {
		return nil, err
	}
	return invoke[json.RawMessage](ctx, c, endpoint.AddressAdd, payload{json: req}, opts)
}

// EditAddress updates a shipping address.
func (c *Client) EditAddress(ctx context.Context, req dto.AddressRequest, opts ...Option) (*common.Response[json.RawMessage], error) {
	if req.ID <= 0 {
		return nil, invalidf("id", "please choose an address to edit")
	}
	if err := checkAddress(&req); err != nil {
		return nil, err
	}
	return invoke[json.RawMessage](ctx, c, endpoint.AddressEdit, payload{json: req}, opts)
}

// DeleteAddress removes a shipping address.
func (c *Client) DeleteAddress(ctx context.Context, id common.ID, opts ...Option) (*common.Response[json.RawMessage], error) {
	if id <= 0 {
		return nil, invalidf("id", "please choose an address")
	}
	return invoke[json.RawMessage](ctx, c, endpoint.AddressDelete, payload{form: idForm("id", id)}, opts)
}

func checkAddress(req *dto.AddressRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Province = strings.TrimSpace(req.Province)
	req.City = strings.TrimSpace(req.City)
	req.District = strings.TrimSpace(req.District)
	req.Detail = strings.TrimSpace(req.Detail)
	if req.IsDefault != 0 {
		req.IsDefault = 1
	}
	return firstError(
		invalid("name", validate.Required(req.Name, "the recipient name")),
		invalid("mobile", validate.Phone(req.Mobile)),
		invalid("province", validate.Required(req.Province, "the province")),
		invalid("city", validate.Required(req.City, "the city")),
		invalid("address", validate.Required(req.Detail, "the street address")),
	)
}
