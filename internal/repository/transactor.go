package repository

import "context"

// Tx holds repositories bound to a single database transaction.
type Tx struct {
	PullRequests PullRequestRepository
	Reviews      ReviewRepository
	Findings     FindingRepository
}

// Transactor commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
