package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// TransitionPolicy decides which approval actions are allowed from which
// status.
type TransitionPolicy int

const (
	// PermissivePolicy accepts every action from every status; each action
	// lands in its fixed target. No read happens before the write.
	PermissivePolicy TransitionPolicy = iota

	// StrictPolicy only allows pending -> approved|rejected and
	// approved|rejected -> pending. A stored status label outside those three
	// can only be revoked back to pending. It reads the current status first,
	// so two approvers racing on the same day can both pass the check; the
	// last write wins.
	StrictPolicy
)

var strictTransitions = map[attendance.Status]map[attendance.Action]bool{
	attendance.StatusPending:  {attendance.ActionApprove: true, attendance.ActionReject: true},
	attendance.StatusApproved: {attendance.ActionRevoke: true},
	attendance.StatusRejected: {attendance.ActionRevoke: true},
}

func (p TransitionPolicy) String() string {
	if p == StrictPolicy {
		return "strict"
	}
	return "permissive"
}

// Transition returns the status reached by applying action from status from.
func (p TransitionPolicy) Transition(from attendance.Status, action attendance.Action) (attendance.Status, error) {
	to, err := action.Target()
	if err != nil {
		return "", err
	}
	if p != StrictPolicy {
		return to, nil
	}
	if !from.IsValid() && action == attendance.ActionRevoke {
		return to, nil
	}
	if !strictTransitions[from][action] {
		return "", fmt.Errorf("%w: cannot %s from %s", attendance.ErrIllegalTransition, action, from)
	}
	return to, nil
}

// Approve implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.StatusActionRequest) error {
	return a.transition(ctx, req, attendance.ActionApprove)
}

// Reject implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.StatusActionRequest) error {
	return a.transition(ctx, req, attendance.ActionReject)
}

// Revoke implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Revoke(ctx context.Context, req attendance.StatusActionRequest) error {
	return a.transition(ctx, req, attendance.ActionRevoke)
}

// transition writes exactly {dayKey: {status}}; start, end and task are
// never touched.
func (a *AttendanceServiceImpl) transition(ctx context.Context, req attendance.StatusActionRequest, action attendance.Action) error {
	op := string(action)

	if err := req.Validate(); err != nil {
		slog.Warn("Attendance request rejected", "operation", op, "uid", req.UID, "input", req.Date, "error", err)
		return err
	}

	key, err := a.normalize(op, req.UID, req.Date)
	if err != nil {
		return err
	}

	from := attendance.StatusPending
	if a.policy == StrictPolicy {
		bucket, err := a.BucketRepository.Get(ctx, req.UID, key.YearMonth())
		if err != nil {
			slog.Error("Attendance store read failed", "operation", op, "uid", req.UID, "input", req.Date, "error", err)
			return fmt.Errorf("%w: %w", attendance.ErrStoreUnavailable, err)
		}
		current := bucket[key.LegacyDayKey()].Merge(bucket[key.DayKey()])
		from = fillDefaults(current).Status
	}

	to, err := a.policy.Transition(from, action)
	if err != nil {
		slog.Warn("Attendance transition refused", "operation", op, "uid", req.UID, "input", req.Date, "from", from, "error", err)
		return err
	}

	label := to.Label()
	return a.merge(ctx, op, req.UID, req.Date, key, attendance.DayRecord{Status: &label})
}
