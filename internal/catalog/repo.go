package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pos-analytics/pkg/db/models"
)

// Repository reads reference tables. Soft-deleted categories and products are
// hidden by gorm's default scope.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListStores returns stores ordered by name, optionally only active ones.
func (r *Repository) ListStores(ctx context.Context, activeOnly bool) ([]models.Store, error) {
	q := r.db.WithContext(ctx).Order("name").Order("id")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var stores []models.Store
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *Repository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListProducts returns products with their category name. Products whose
// category was deleted keep a nil name.
func (r *Repository) ListProducts(ctx context.Context, q ProductQuery) ([]ProductDTO, error) {
	stmt := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.id AS id, products.name AS name, products.category_id AS category_id, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id AND categories.deleted_at IS NULL").
		Order("products.name").
		Order("products.id")
	if q.CategoryID != nil {
		stmt = stmt.Where("products.category_id = ?", *q.CategoryID)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	var products []ProductDTO
	if err := stmt.Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
