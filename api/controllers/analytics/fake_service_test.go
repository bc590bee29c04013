package analytics

import (
	"context"

	"github.com/angelmondragon/pos-analytics/internal/analytics/types"
	"github.com/angelmondragon/pos-analytics/pkg/enums"
)

// testAnalyticsService records the last call and returns canned reports.
type testAnalyticsService struct {
	calls     int
	filters   types.Filters
	limit     int
	period    enums.Period
	dayOfWeek *int
	retention types.RetentionParams
	margin    types.MarginParams
	trend     types.TicketTrendParams
	err       error
}

func (s *testAnalyticsService) record(f types.Filters) error {
	s.calls++
	s.filters = f
	return s.err
}

func (s *testAnalyticsService) SalesOverview(_ context.Context, f types.Filters) (*types.SalesOverview, error) {
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.SalesOverview{TotalSales: 3, TotalRevenue: 158, AverageTicket: 52.67, CompletedSales: 2, CancelledSales: 1}, nil
}

func (s *testAnalyticsService) ProductRanking(_ context.Context, f types.Filters, limit int) (*types.ProductRankingResponse, error) {
	s.limit = limit
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.ProductRankingResponse{Products: []types.ProductRankingItem{}, TotalCount: 0}, nil
}

func (s *testAnalyticsService) ChannelPerformance(_ context.Context, f types.Filters) (*types.ChannelPerformanceResponse, error) {
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.ChannelPerformanceResponse{Channels: []types.ChannelPerformanceItem{}}, nil
}

func (s *testAnalyticsService) StorePerformance(_ context.Context, f types.Filters) (*types.StorePerformanceResponse, error) {
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.StorePerformanceResponse{Stores: []types.StorePerformanceItem{}}, nil
}

func (s *testAnalyticsService) TimeSeries(_ context.Context, f types.Filters, period enums.Period) (*types.TimeSeriesResponse, error) {
	s.period = period
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.TimeSeriesResponse{Data: []types.TimeSeriesPoint{}, PeriodType: period.String()}, nil
}

func (s *testAnalyticsService) CustomerRetention(_ context.Context, f types.Filters, params types.RetentionParams) (*types.CustomerRetentionResponse, error) {
	s.retention = params
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.CustomerRetentionResponse{Customers: []types.CustomerRetentionItem{}}, nil
}

func (s *testAnalyticsService) DeliveryPerformance(_ context.Context, f types.Filters) (*types.DeliveryPerformanceResponse, error) {
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.DeliveryPerformanceResponse{Performance: []types.DeliveryPerformanceItem{}}, nil
}

func (s *testAnalyticsService) HourlyPerformance(_ context.Context, f types.Filters, dayOfWeek *int) (*types.HourlyPerformanceResponse, error) {
	s.dayOfWeek = dayOfWeek
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.HourlyPerformanceResponse{Performance: []types.HourlyPerformanceItem{}}, nil
}

func (s *testAnalyticsService) ProductMargin(_ context.Context, f types.Filters, params types.MarginParams) (*types.ProductMarginResponse, error) {
	s.margin = params
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.ProductMarginResponse{Products: []types.ProductMarginItem{}}, nil
}

func (s *testAnalyticsService) TicketTrend(_ context.Context, f types.Filters, params types.TicketTrendParams) (*types.TicketTrendResponse, error) {
	s.trend = params
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.TicketTrendResponse{Data: []types.TicketTrendPoint{}, GroupBy: params.GroupBy.String(), PeriodType: params.Period.String()}, nil
}

func (s *testAnalyticsService) DeliveryTiming(_ context.Context, f types.Filters) (*types.DeliveryTimingResponse, error) {
	if err := s.record(f); err != nil {
		return nil, err
	}
	return &types.DeliveryTimingResponse{Timing: []types.DeliveryTimingItem{}}, nil
}
