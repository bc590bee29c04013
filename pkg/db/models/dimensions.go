package models

import "gorm.io/gorm"

type Store struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	Name     string  `gorm:"column:name;not null"`
	City     *string `gorm:"column:city"`
	State    *string `gorm:"column:state"`
	IsActive bool    `gorm:"column:is_active;not null"`
}

func (Store) TableName() string { return "stores" }

type Channel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description *string `gorm:"column:description"`
	Type        *string `gorm:"column:type"`
}

func (Channel) TableName() string { return "channels" }

// Category is soft-deleted through DeletedAt; default scopes hide deleted rows.
type Category struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Type      *string        `gorm:"column:type"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	CategoryID *int64         `gorm:"column:category_id;index"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Product) TableName() string { return "products" }

type Customer struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	CustomerName *string `gorm:"column:customer_name"`
	Email        *string `gorm:"column:email"`
	PhoneNumber  *string `gorm:"column:phone_number"`
}

func (Customer) TableName() string { return "customers" }

// All lists every model read by the service, in dependency order. Local sqlite
// databases and test fixtures are created from it.
func All() []any {
	return []any{
		&Store{},
		&Channel{},
		&Category{},
		&Product{},
		&Customer{},
		&Sale{},
		&ProductSale{},
		&DeliveryAddress{},
	}
}
