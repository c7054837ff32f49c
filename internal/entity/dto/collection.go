package dto

import "collectibles/internal/entity/common"

// CollectionQuery filters marketplace items.
type CollectionQuery struct {
	common.BaseParams
	ArtistID common.ID
	Keyword  string
	// Sort is one of "price_asc", "price_desc", "new".
	Sort string
}

// CollectionItem is a collectible offered on the marketplace.
type CollectionItem struct {
	ID         common.ID     `json:"id"`
	Title      string        `json:"title"`
	Image      string        `json:"image"`
	Price      common.Amount `json:"price"`
	Stock      common.Int    `json:"stock"`
	Sales      common.Int    `json:"sales"`
	ArtistID   common.ID     `json:"artist_id"`
	ArtistName string        `json:"artist_name"`
	Content    string        `json:"content"`
	StartTime  common.Unix   `json:"start_time"`
	Status     common.Int    `json:"status"`
}

// Pay types accepted when buying.
const (
	PayBalance    = "money"
	PayServiceFee = "service_fee"
)

// BuyRequest purchases a collection item.
type BuyRequest struct {
	ItemID   common.ID
	Quantity int64
	PayType  string
}

// UserCollection is an item the user owns.
type UserCollection struct {
	ID            common.ID     `json:"id"`
	ItemID        common.ID     `json:"item_id"`
	Title         string        `json:"title"`
	Image         string        `json:"image"`
	BuyPrice      common.Amount `json:"buy_price"`
	Status        common.Int    `json:"status"`
	StatusText    string        `json:"status_text"`
	CanConsign    common.Flag   `json:"can_consign"`
	CanDeliver    common.Flag   `json:"can_deliver"`
	CreateTime    common.Unix   `json:"createtime"`
	CertificateNo string        `json:"certificate_no"`
}

// ConsignRequest lists an owned item for resale.
type ConsignRequest struct {
	UserCollectionID common.ID
	Price            string
}

// ConsignmentItem is one of the user's resale listings.
type ConsignmentItem struct {
	ID               common.ID     `json:"id"`
	UserCollectionID common.ID     `json:"user_collection_id"`
	Title            string        `json:"title"`
	Image            string        `json:"image"`
	Price            common.Amount `json:"price"`
	ServiceFee       common.Amount `json:"service_fee"`
	Status           common.Int    `json:"status"`
	StatusText       string        `json:"status_text"`
	CreateTime       common.Unix   `json:"createtime"`
}

// DeliverRequest asks for physical delivery of an owned item.
type DeliverRequest struct {
	UserCollectionID common.ID
	AddressID        common.ID
}

// Artist is a creator whose works are listed.
type Artist struct {
	ID        common.ID  `json:"id"`
	Name      string     `json:"name"`
	Avatar    string     `json:"avatar"`
	Intro     string     `json:"intro"`
	WorkCount common.Int `json:"work_count"`
}
