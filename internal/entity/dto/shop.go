package dto

import "collectibles/internal/entity/common"

// ProductQuery filters the shop product list.
type ProductQuery struct {
	common.BaseParams
	CategoryID common.ID
	Keyword    string
}

// Product is a shop product.
type Product struct {
	ID         common.ID          `json:"id"`
	Title      string             `json:"title"`
	Image      string             `json:"image"`
	Images     common.StringArray `json:"images"`
	Price      common.Amount      `json:"price"`
	Stock      common.Int         `json:"stock"`
	Sales      common.Int         `json:"sales"`
	Content    string             `json:"content"`
	IsPhysical common.Flag        `json:"is_physical"`
}

// ShopOrderRequest creates a shop order. AddressID may be zero, in which case
// the default address is looked up.
type ShopOrderRequest struct {
	ProductID common.ID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	AddressID common.ID `json:"address_id,omitempty"`
	Remark    string    `json:"remark,omitempty"`
	// Physical marks products that must ship to an address.
	Physical bool `json:"-"`
}

// ShopOrderItem is one shop order.
type ShopOrderItem struct {
	ID          common.ID     `json:"id"`
	OrderNo     string        `json:"order_no"`
	ProductID   common.ID     `json:"product_id"`
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Price       common.Amount `json:"price"`
	Quantity    common.Int    `json:"quantity"`
	TotalAmount common.Amount `json:"total_amount"`
	Status      common.Int    `json:"status"`
	StatusText  string        `json:"status_text"`
	ExpressName string        `json:"express_name"`
	ExpressNo   string        `json:"express_no"`
	CreateTime  common.Unix   `json:"createtime"`
}

// ShopOrderQuery filters shop orders by status; empty means all.
type ShopOrderQuery struct {
	common.BaseParams
	Status string
}

// Address is a shipping address.
type Address struct {
	ID        common.ID   `json:"id"`
	Name      string      `json:"name"`
	Mobile    string      `json:"mobile"`
	Province  string      `json:"province"`
	City      string      `json:"city"`
	District  string      `json:"district"`
	Detail    string      `json:"address"`
	IsDefault common.Flag `json:"is_default"`
}

// AddressRequest adds or edits an address. ID is zero on add.
type AddressRequest struct {
	ID        common.ID `json:"id,omitempty"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Province  string    `json:"province"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	Detail    string    `json:"address"`
	IsDefault int       `json:"is_default"`
}
