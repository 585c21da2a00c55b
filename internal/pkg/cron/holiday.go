package cron

import (
	"context"
	"errors"
	"time"
)

// HolidayWarmer loads one year of the holiday calendar into its cache.
type HolidayWarmer interface {
	Warm(ctx context.Context, year int) error
}

type HolidayJobs struct {
	warmer HolidayWarmer
	now    func() time.Time
}

func NewHolidayJobs(warmer HolidayWarmer) *HolidayJobs {
	return &HolidayJobs{
		warmer: warmer,
		now:    time.Now,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("warm_holiday_cache", 12*time.Hour, j.WarmHolidayCache)
}

// WarmHolidayCache fetches the current and the next year, so month views near
// the turn of the year do not wait on the upstream calendar.
func (j *HolidayJobs) WarmHolidayCache(ctx context.Context) error {
	year := j.now().Year()
	return errors.Join(
		j.warmer.Warm(ctx, year),
		j.warmer.Warm(ctx, year+1),
	)
}
