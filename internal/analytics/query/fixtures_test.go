package query

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/angelmondragon/pos-analytics/pkg/db/models"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// fixture seeds an isolated in-memory POS database.
type fixture struct {
	t      *testing.T
	db     *gorm.DB
	nextID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(models.All()...))

	f := &fixture{t: t, db: conn}
	f.create(&models.Store{ID: 1, Name: "Centro", City: strPtr("Belo Horizonte"), State: strPtr("MG"), IsActive: true})
	f.create(&models.Store{ID: 2, Name: "Norte", City: strPtr("Contagem"), State: strPtr("MG"), IsActive: true})
	f.create(&models.Channel{ID: 1, Name: "iFood", Type: strPtr("D")})
	f.create(&models.Channel{ID: 2, Name: "Presencial", Type: strPtr("P")})
	f.create(&models.Category{ID: 1, Name: "Lanches"})
	f.create(&models.Product{ID: 1, Name: "X-Burger", CategoryID: int64Ptr(1)})
	f.create(&models.Product{ID: 2, Name: "Batata", CategoryID: int64Ptr(1)})
	f.create(&models.Product{ID: 3, Name: "Refrigerante"})
	return f
}

func (f *fixture) service(opts ...Option) Service {
	f.t.Helper()
	svc, err := NewService(f.db, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
	require.NoError(f.t, err)
	return svc
}

func (f *fixture) create(value any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(value).Error)
}

// sale inserts a sale and returns its id. Zero store/channel default to 1.
func (f *fixture) sale(s models.Sale) int64 {
	f.t.Helper()
	f.nextID++
	s.ID = f.nextID
	if s.StoreID == 0 {
		s.StoreID = 1
	}
	if s.ChannelID == 0 {
		s.ChannelID = 1
	}
	if s.SaleStatusDesc == "" {
		s.SaleStatusDesc = "COMPLETED"
	}
	s.CreatedAt = s.CreatedAt.UTC()
	f.create(&s)
	return s.ID
}

func (f *fixture) line(saleID, productID int64, qty float64, base, total string) {
	f.t.Helper()
	f.create(&models.ProductSale{
		SaleID:     saleID,
		ProductID:  productID,
		Quantity:   qty,
		BasePrice:  decimal.RequireFromString(base),
		TotalPrice: decimal.RequireFromString(total),
	})
}

func (f *fixture) address(saleID int64, neighborhood, city string) {
	f.t.Helper()
	f.create(&models.DeliveryAddress{SaleID: saleID, Neighborhood: &neighborhood, City: &city})
}

// seedOrders inserts two completed sales on Thursday and Friday plus a
// cancelled one that must never count towards completed metrics.
func (f *fixture) seedOrders() {
	a := f.sale(models.Sale{StoreID: 1, ChannelID: 1, CreatedAt: at("2024-03-07T12:00:00Z"), TotalAmount: money("29.00")})
	f.line(a, 1, 2, "20.00", "24.00")
	f.line(a, 3, 1, "5.00", "5.00")

	b := f.sale(models.Sale{StoreID: 2, ChannelID: 2, CreatedAt: at("2024-03-08T19:00:00Z"), SaleStatusDesc: "completed", TotalAmount: money("49.00")})
	f.line(b, 1, 1, "20.00", "22.00")
	f.line(b, 2, 4, "32.00", "36.00")

	c := f.sale(models.Sale{StoreID: 1, ChannelID: 1, CreatedAt: at("2024-03-07T13:00:00Z"), SaleStatusDesc: "CANCELLED", TotalAmount: money("80.00")})
	f.line(c, 2, 10, "80.00", "80.00")
}

func at(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func money(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func strPtr(v string) *string { return &v }

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }
