package hrisapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type holidayResponse struct {
	Date          string          `json:"date"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	PayMultiplier decimal.Decimal `json:"payMultiplier"`
}

// ListHolidays fetches designated holidays between start and end, keyed by date.
func (c *Client) ListHolidays(ctx context.Context, start, end time.Time) (map[string]attendance.Holiday, error) {
	query := url.Values{}
	query.Set("start_date", start.Format(attendance.DateLayout))
	query.Set("end_date", end.Format(attendance.DateLayout))

	var items []holidayResponse
	if err := c.get(ctx, "/holidays", query, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	holidays := make(map[string]attendance.Holiday, len(items))
	for _, item := range items {
		date, err := attendance.ParseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to decode holiday %q: %w", item.Name, err)
		}
		holidays[date.Format(attendance.DateLayout)] = attendance.Holiday{
			Name:          item.Name,
			Type:          item.Type,
			PayMultiplier: item.PayMultiplier,
		}
	}
	return holidays, nil
}

var _ attendance.HolidayRepository = (*Client)(nil)
