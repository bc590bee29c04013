package analytics

import (
	"net/http"

	"github.com/angelmondragon/pos-analytics/api/responses"
	"github.com/angelmondragon/pos-analytics/api/validators"
	"github.com/angelmondragon/pos-analytics/internal/analytics"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
)

func SalesOverview(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.SalesOverview(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ProductRanking also accepts day_of_week, hour_start and hour_end to rank
// products within a time window.
func ProductRanking(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, window, err := validators.ParseRanking(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filters.Window = window

		result, err := service.ProductRanking(ctx, filters, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ChannelPerformance(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.ChannelPerformance(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func StorePerformance(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.StorePerformance(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func TimeSeries(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		period, err := validators.ParsePeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.TimeSeries(ctx, filters, period)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func CustomerRetention(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := validators.ParseRetention(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.CustomerRetention(ctx, filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func DeliveryPerformance(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.DeliveryPerformance(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func HourlyPerformance(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dayOfWeek, err := validators.ParseHourly(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.HourlyPerformance(ctx, filters, dayOfWeek)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductMargin(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := validators.ParseMargin(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.ProductMargin(ctx, filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func TicketTrend(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := validators.ParseTicketTrend(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.TicketTrend(ctx, filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func DeliveryTiming(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filters, err := validators.ParseFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.DeliveryTiming(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
