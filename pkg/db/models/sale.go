package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one POS transaction. Rows are owned by the ingestion pipeline; this
// service only reads them.
type Sale struct {
	ID                int64           `gorm:"column:id;primaryKey"`
	StoreID           int64           `gorm:"column:store_id;not null;index"`
	ChannelID         int64           `gorm:"column:channel_id;not null;index"`
	CustomerID        *int64          `gorm:"column:customer_id;index"`
	CreatedAt         time.Time       `gorm:"column:created_at;not null;index"`
	SaleStatusDesc    string          `gorm:"column:sale_status_desc;not null"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2);not null"`
	TotalDiscount     decimal.Decimal `gorm:"column:total_discount;type:numeric(10,2);not null;default:0"`
	DeliveryFee       decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	ProductionSeconds *int            `gorm:"column:production_seconds"`
	DeliverySeconds   *int            `gorm:"column:delivery_seconds"`
}

func (Sale) TableName() string { return "sales" }

// ProductSale is a line item. TotalPrice includes customizations on top of BasePrice.
type ProductSale struct {
	ID         int64           `gorm:"column:id;primaryKey"`
	SaleID     int64           `gorm:"column:sale_id;not null;index"`
	ProductID  int64           `gorm:"column:product_id;not null;index"`
	Quantity   float64         `gorm:"column:quantity;not null"`
	BasePrice  decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
}

func (ProductSale) TableName() string { return "product_sales" }

type DeliveryAddress struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	SaleID       int64   `gorm:"column:sale_id;not null;index"`
	Neighborhood *string `gorm:"column:neighborhood"`
	City         *string `gorm:"column:city"`
}

func (DeliveryAddress) TableName() string { return "delivery_addresses" }
