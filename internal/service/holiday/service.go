package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/singleflight"
)

// DefaultURL serves {"YYYY-MM-DD": "name", ...} for one year.
const DefaultURL = "https://holidays-jp.github.io/api/v1/{year}/date.json"

var _ holiday.Service = (*HolidayServiceImpl)(nil)

type HolidayServiceImpl struct {
	client      *http.Client
	urlTemplate string

	mu    sync.RWMutex
	years map[int]map[string]string
	group singleflight.Group
}

// ListHolidays implements holiday.Service.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, year int, month int) []string {
	m, err := calendar.NewMonth(year, month)
	if err != nil {
		slog.Warn("Holiday lookup rejected", "year", year, "month", month, "error", err)
		return []string{}
	}

	days, err := s.yearHolidays(ctx, m.Year)
	if err != nil {
		slog.Warn("Holiday lookup failed", "year", m.Year, "month", int(m.Month), "error", err)
		return []string{}
	}

	prefix := m.YearMonth() + "-"
	result := []string{}
	for date := range days {
		if strings.HasPrefix(date, prefix) {
			result = append(result, date)
		}
	}
	sort.Strings(result)
	return result
}

// Warm loads year into the cache if it is not there yet.
func (s *HolidayServiceImpl) Warm(ctx context.Context, year int) error {
	_, err := s.yearHolidays(ctx, year)
	return err
}

// yearHolidays returns the cached calendar of year, fetching it once.
// Failed fetches are not cached.
func (s *HolidayServiceImpl) yearHolidays(ctx context.Context, year int) (map[string]string, error) {
	s.mu.RLock()
	days, ok := s.years[year]
	s.mu.RUnlock()
	if ok {
		return days, nil
	}

	v, err, _ := s.group.Do(strconv.Itoa(year), func() (interface{}, error) {
		// Shared by every waiter, so one caller's cancellation must not end it.
		days, err := s.fetch(context.WithoutCancel(ctx), year)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.years[year] = days
		s.mu.Unlock()
		return days, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

func (s *HolidayServiceImpl) fetch(ctx context.Context, year int) (map[string]string, error) {
	url := strings.ReplaceAll(s.urlTemplate, "{year}", strconv.Itoa(year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday calendar returned status %d", resp.StatusCode)
	}

	days := map[string]string{}
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	// Keep only well-formed dates of the requested year.
	for date := range days {
		k, err := calendar.Parse(date, time.UTC)
		if err != nil || k.Year != year || k.FullDate() != date {
			delete(days, date)
		}
	}

	return days, nil
}

// NewHolidayService builds a holiday lookup. urlTemplate must contain
// "{year}"; an empty template uses DefaultURL.
func NewHolidayService(urlTemplate string, timeout time.Duration) *HolidayServiceImpl {
	if urlTemplate == "" {
		urlTemplate = DefaultURL
	}
	return &HolidayServiceImpl{
		client:      &http.Client{Timeout: timeout},
		urlTemplate: urlTemplate,
		years:       make(map[int]map[string]string),
	}
}
