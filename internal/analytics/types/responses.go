package types

import "time"

type SalesOverview struct {
	TotalSales       int64   `json:"total_sales"`
	TotalRevenue     float64 `json:"total_revenue"`
	AverageTicket    float64 `json:"average_ticket"`
	CompletedSales   int64   `json:"completed_sales"`
	CancelledSales   int64   `json:"cancelled_sales"`
	TotalDiscount    float64 `json:"total_discount"`
	TotalDeliveryFee float64 `json:"total_delivery_fee"`
}

type ProductRankingItem struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	CategoryName  *string `json:"category_name"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int64   `json:"order_count"`
	AveragePrice  float64 `json:"average_price"`
}

type ProductRankingResponse struct {
	Products   []ProductRankingItem `json:"products"`
	TotalCount int                  `json:"total_count"`
}

type ChannelPerformanceItem struct {
	ChannelID         int64   `json:"channel_id"`
	ChannelName       string  `json:"channel_name"`
	ChannelType       *string `json:"channel_type"`
	TotalSales        int64   `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageTicket     float64 `json:"average_ticket"`
	RevenuePercentage float64 `json:"revenue_percentage"`
}

type ChannelPerformanceResponse struct {
	Channels []ChannelPerformanceItem `json:"channels"`
}

type StorePerformanceItem struct {
	StoreID           int64   `json:"store_id"`
	StoreName         string  `json:"store_name"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	TotalSales        int64   `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageTicket     float64 `json:"average_ticket"`
	RevenuePercentage float64 `json:"revenue_percentage"`
}

type StorePerformanceResponse struct {
	Stores []StorePerformanceItem `json:"stores"`
}

type TimeSeriesPoint struct {
	Date          string  `json:"date"`
	SalesCount    int64   `json:"sales_count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
}

type TimeSeriesResponse struct {
	Data       []TimeSeriesPoint `json:"data"`
	PeriodType string            `json:"period_type"`
}

type CustomerRetentionItem struct {
	CustomerID         int64     `json:"customer_id"`
	CustomerName       *string   `json:"customer_name"`
	Email              *string   `json:"email"`
	PhoneNumber        *string   `json:"phone_number"`
	TotalOrders        int64     `json:"total_orders"`
	TotalSpent         float64   `json:"total_spent"`
	AverageTicket      float64   `json:"average_ticket"`
	FirstOrderDate     time.Time `json:"first_order_date"`
	LastOrderDate      time.Time `json:"last_order_date"`
	DaysSinceLastOrder int       `json:"days_since_last_order"`
}

type CustomerRetentionResponse struct {
	Customers  []CustomerRetentionItem `json:"customers"`
	TotalCount int                     `json:"total_count"`
}

type DeliveryPerformanceItem struct {
	Neighborhood             *string `json:"neighborhood"`
	City                     *string `json:"city"`
	TotalDeliveries          int64   `json:"total_deliveries"`
	AvgDeliveryTimeMinutes   float64 `json:"avg_delivery_time_minutes"`
	AvgProductionTimeMinutes float64 `json:"avg_production_time_minutes"`
	TotalDeliveryTimeMinutes float64 `json:"total_delivery_time_minutes"`
}

type DeliveryPerformanceResponse struct {
	Performance []DeliveryPerformanceItem `json:"performance"`
}

type HourlyPerformanceItem struct {
	Hour          int     `json:"hour"`
	DayOfWeek     int     `json:"day_of_week"`
	DayName       string  `json:"day_name"`
	SalesCount    int64   `json:"sales_count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
}

type HourlyPerformanceResponse struct {
	Performance []HourlyPerformanceItem `json:"performance"`
}

type ProductMarginItem struct {
	ProductID             int64   `json:"product_id"`
	ProductName           string  `json:"product_name"`
	CategoryName          *string `json:"category_name"`
	AvgBasePrice          float64 `json:"avg_base_price"`
	AvgTotalPrice         float64 `json:"avg_total_price"`
	AvgCustomizationValue float64 `json:"avg_customization_value"`
	TotalRevenue          float64 `json:"total_revenue"`
	OrderCount            int64   `json:"order_count"`
}

type ProductMarginResponse struct {
	Products []ProductMarginItem `json:"products"`
}

type TicketTrendPoint struct {
	Date          string  `json:"date"`
	GroupID       int64   `json:"group_id"`
	GroupName     string  `json:"group_name"`
	SalesCount    int64   `json:"sales_count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
}

type TicketTrendResponse struct {
	Data       []TicketTrendPoint `json:"data"`
	GroupBy    string             `json:"group_by"`
	PeriodType string             `json:"period_type"`
}

type DeliveryTimingItem struct {
	DayOfWeek              int     `json:"day_of_week"`
	DayName                string  `json:"day_name"`
	Hour                   int     `json:"hour"`
	TotalDeliveries        int64   `json:"total_deliveries"`
	AvgDeliveryTimeMinutes float64 `json:"avg_delivery_time_minutes"`
}

type DeliveryTimingResponse struct {
	Timing []DeliveryTimingItem `json:"timing"`
}
