package get_canteen_orders

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

// parseQuery разбирает query-параметры ленты заказов
// Поддерживаются status, startDate, endDate (RFC3339 или YYYY-MM-DD)
// и includeCancelled
func parseQuery(query url.Values) (*models.GetCanteenOrdersRequest, error) {
	req := &models.GetCanteenOrdersRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := parseTimestamp(raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := parseTimestamp(raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		includeCancelled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

// parseTimestamp принимает полную метку времени или дату без времени
// Дата без времени трактуется как полночь UTC
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse(domain.DateFormat, raw)
}
