package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/openreview-store/internal/repository"
)

type transactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *transactor {
	return &transactor{db: db}
}

// WithinTx runs fn against repositories bound to one transaction.
func (t *transactor) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) (err error) {
	defer observe(ctx, transactionsRepo, "within_tx", time.Now(), &err)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(repository.Tx{
		PullRequests: NewPullRequestRepositoryWithTx(tx),
		Reviews:      NewReviewRepositoryWithTx(tx),
		Findings:     NewFindingRepositoryWithTx(tx),
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}
