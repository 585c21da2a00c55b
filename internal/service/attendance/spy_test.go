package attendance

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

// spyRepository records calls to the wrapped store and can fail on demand.
type spyRepository struct {
	*memory.AttendanceRepository

	mu       sync.Mutex
	gets     int
	merges   []attendance.Bucket
	replaces int
	failWith error
}

func newSpyRepository() *spyRepository {
	return &spyRepository{AttendanceRepository: memory.NewAttendanceRepository()}
}

func (s *spyRepository) Get(ctx context.Context, userID string, yearMonth string) (attendance.Bucket, error) {
	s.mu.Lock()
	s.gets++
	err := s.failWith
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.AttendanceRepository.Get(ctx, userID, yearMonth)
}

func (s *spyRepository) Merge(ctx context.Context, userID string, yearMonth string, patch attendance.Bucket) error {
	s.mu.Lock()
	s.merges = append(s.merges, patch.Clone())
	err := s.failWith
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.AttendanceRepository.Merge(ctx, userID, yearMonth, patch)
}

func (s *spyRepository) Replace(ctx context.Context, userID string, yearMonth string, bucket attendance.Bucket) error {
	s.mu.Lock()
	s.replaces++
	err := s.failWith
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.AttendanceRepository.Replace(ctx, userID, yearMonth, bucket)
}

func (s *spyRepository) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.merges) + s.replaces
}

func (s *spyRepository) lastMerge() attendance.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.merges) == 0 {
		return nil
	}
	return s.merges[len(s.merges)-1]
}

func str(s string) *string { return &s }
