package catalog

import "github.com/angelmondragon/pos-analytics/pkg/db/models"

// StoreDTO is the public view of a store.
type StoreDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	IsActive bool    `json:"is_active"`
}

// ChannelDTO is the public view of a sales channel.
type ChannelDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// CategoryDTO is the public view of a product category.
type CategoryDTO struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Type *string `json:"type"`
}

// ProductDTO is a product with its category name resolved.
type ProductDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`
}

// Metadata bundles the reference data a dashboard needs to build its filters.
type Metadata struct {
	Stores     []StoreDTO    `json:"stores"`
	Channels   []ChannelDTO  `json:"channels"`
	Categories []CategoryDTO `json:"categories"`
}

// ProductQuery narrows ListProducts.
type ProductQuery struct {
	CategoryID *int64
	Limit      int
}

func storeFromModel(m models.Store) StoreDTO {
	return StoreDTO{ID: m.ID, Name: m.Name, City: m.City, State: m.State, IsActive: m.IsActive}
}

func channelFromModel(m models.Channel) ChannelDTO {
	return ChannelDTO{ID: m.ID, Name: m.Name, Type: m.Type, Description: m.Description}
}

func categoryFromModel(m models.Category) CategoryDTO {
	return CategoryDTO{ID: m.ID, Name: m.Name, Type: m.Type}
}
