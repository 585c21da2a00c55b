package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendarServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		if r.URL.Path != "/2024/date.json" {
			w.Write([]byte(`{}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"2024-01-01": "元日",
			"2024-05-06": "休日",
			"2024-05-03": "憲法記念日",
			"2024-05-04": "みどりの日",
			"2024-05-05": "こどもの日",
			"2023-05-05": "wrong year",
			"not-a-date": "junk"
		}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListHolidays_FiltersAndSorts(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusOK)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)

	got := svc.ListHolidays(context.Background(), 2024, 5)

	assert.Equal(t, []string{"2024-05-03", "2024-05-04", "2024-05-05", "2024-05-06"}, got)
}

func TestListHolidays_CachesPerYear(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusOK)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.ListHolidays(ctx, 2024, 5)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"2024-01-01"}, svc.ListHolidays(ctx, 2024, 1))
	assert.Empty(t, svc.ListHolidays(ctx, 2024, 2))
	assert.LessOrEqual(t, atomic.LoadInt32(&hits), int32(2))

	before := atomic.LoadInt32(&hits)
	svc.ListHolidays(ctx, 2024, 12)
	assert.Equal(t, before, atomic.LoadInt32(&hits))
}

func TestListHolidays_FailureIsEmpty(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusInternalServerError)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)
	ctx := context.Background()

	got := svc.ListHolidays(ctx, 2024, 5)
	require.NotNil(t, got)
	assert.Empty(t, got)

	// failures are retried on the next call
	svc.ListHolidays(ctx, 2024, 5)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestListHolidays_Unreachable(t *testing.T) {
	svc := NewHolidayService("http://127.0.0.1:1/{year}.json", 200*time.Millisecond)

	got := svc.ListHolidays(context.Background(), 2024, 5)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListHolidays_InvalidMonth(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusOK)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)

	assert.Empty(t, svc.ListHolidays(context.Background(), 2024, 13))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestWarm_PopulatesCache(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusOK)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Warm(ctx, 2024))
	assert.Len(t, svc.ListHolidays(ctx, 2024, 5), 4)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestWarm_ReportsFailure(t *testing.T) {
	var hits int32
	srv := newCalendarServer(t, &hits, http.StatusBadGateway)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", time.Second)

	assert.Error(t, svc.Warm(context.Background(), 2024))
}

func TestListHolidays_CancelledCallerDoesNotAbortSharedFetch(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"2024-05-03": "憲法記念日"}`))
	}))
	t.Cleanup(srv.Close)
	svc := NewHolidayService(srv.URL+"/{year}/date.json", 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []string, 1)
	go func() { done <- svc.ListHolidays(ctx, 2024, 5) }()

	<-arrived
	cancel()
	close(release)

	assert.Equal(t, []string{"2024-05-03"}, <-done)
	assert.Equal(t, []string{"2024-05-03"}, svc.ListHolidays(context.Background(), 2024, 5))
}
