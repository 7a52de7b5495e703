package domain

import (
	"fmt"
	"time"
)

type ReviewStatus string

const (
	ReviewStatusPending    ReviewStatus = "PENDING"
	ReviewStatusInProgress ReviewStatus = "IN_PROGRESS"
	ReviewStatusCompleted  ReviewStatus = "COMPLETED"
	ReviewStatusFailed     ReviewStatus = "FAILED"
	ReviewStatusCancelled  ReviewStatus = "CANCELLED"
)

var reviewStatuses = []ReviewStatus{
	ReviewStatusPending,
	ReviewStatusInProgress,
	ReviewStatusCompleted,
	ReviewStatusFailed,
	ReviewStatusCancelled,
}

// ReviewStatuses returns every status in declaration order.
func ReviewStatuses() []ReviewStatus {
	return append([]ReviewStatus(nil), reviewStatuses...)
}

func (s ReviewStatus) Valid() bool {
	for _, known := range reviewStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is expected.
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusCompleted || s == ReviewStatusFailed || s == ReviewStatusCancelled
}

func (s ReviewStatus) String() string {
	return string(s)
}

// ParseReviewStatus is used for caller input; values read back from storage
// go through DecodeReviewStatus instead.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	status := ReviewStatus(s)
	if !status.Valid() {
		return "", NewInvalidArgumentError("unknown review status %q", s)
	}
	return status, nil
}

func DecodeReviewStatus(s string) (ReviewStatus, error) {
	status := ReviewStatus(s)
	if !status.Valid() {
		return "", NewDataCorruptionError("stored review status %q is not recognized", s)
	}
	return status, nil
}

type Review struct {
	ID            string
	PullRequestID string
	Status        ReviewStatus
	CreatedAt     time.Time
	StartedAt     time.Time
	DurationMs    *int64
}

// IsStuck reports whether the review is still running and was started before threshold.
func (r *Review) IsStuck(threshold time.Time) bool {
	return r.Status == ReviewStatusInProgress && r.StartedAt.Before(threshold)
}

func (r *Review) String() string {
	return fmt.Sprintf("review %s (%s)", r.ID, r.Status)
}
