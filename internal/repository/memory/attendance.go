// Package memory provides an in-process attendance bucket store for
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	buckets map[attendance.BucketRef]attendance.Bucket
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		buckets: make(map[attendance.BucketRef]attendance.Bucket),
	}
}

// Get implements attendance.BucketRepository.
func (m *AttendanceRepository) Get(_ context.Context, userID string, yearMonth string) (attendance.Bucket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bucket, ok := m.buckets[attendance.BucketRef{UserID: userID, YearMonth: yearMonth}]
	if !ok {
		return attendance.Bucket{}, nil
	}
	return bucket.Clone(), nil
}

// Merge implements attendance.BucketRepository.
func (m *AttendanceRepository) Merge(_ context.Context, userID string, yearMonth string, patch attendance.Bucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref := attendance.BucketRef{UserID: userID, YearMonth: yearMonth}
	for dayKey, day := range patch.Clone() {
		if day.IsEmpty() {
			continue
		}
		bucket, ok := m.buckets[ref]
		if !ok {
			bucket = attendance.Bucket{}
			m.buckets[ref] = bucket
		}
		bucket.Merge(attendance.Bucket{dayKey: day})
	}
	return nil
}

// Replace implements attendance.BucketRepository.
func (m *AttendanceRepository) Replace(_ context.Context, userID string, yearMonth string, bucket attendance.Bucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buckets[attendance.BucketRef{UserID: userID, YearMonth: yearMonth}] = bucket.Clone()
	return nil
}

// Delete implements attendance.BucketRepository.
func (m *AttendanceRepository) Delete(_ context.Context, userID string, yearMonth string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, attendance.BucketRef{UserID: userID, YearMonth: yearMonth})
	return nil
}

// List implements attendance.BucketRepository.
func (m *AttendanceRepository) List(_ context.Context) ([]attendance.BucketRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	refs := make([]attendance.BucketRef, 0, len(m.buckets))
	for ref := range m.buckets {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].UserID != refs[j].UserID {
			return refs[i].UserID < refs[j].UserID
		}
		return refs[i].YearMonth < refs[j].YearMonth
	})
	return refs, nil
}
