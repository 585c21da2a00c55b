package attendance

import (
	"fmt"
	"strings"
)

// Status is the approval state of a day's report.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Display labels. These are the values persisted in buckets.
const (
	LabelPending  = "承認待"
	LabelApproved = "承認済"
	LabelRejected = "却下"
)

var statusLabels = map[Status]string{
	StatusPending:  LabelPending,
	StatusApproved: LabelApproved,
	StatusRejected: LabelRejected,
}

// Label returns the display label of s.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether s is one of the known status codes.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts either a status code or its display label.
func ParseStatus(raw string) (Status, error) {
	v := strings.TrimSpace(raw)
	if status := Status(strings.ToLower(v)); status.IsValid() {
		return status, nil
	}
	for status, label := range statusLabels {
		if v == label {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// Action is an explicit approval workflow step.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionRevoke  Action = "revoke"
)

// Target returns the status an action always lands in.
func (a Action) Target() (Status, error) {
	switch a {
	case ActionApprove:
		return StatusApproved, nil
	case ActionReject:
		return StatusRejected, nil
	case ActionRevoke:
		return StatusPending, nil
	}
	return "", fmt.Errorf("unknown action %q", a)
}
