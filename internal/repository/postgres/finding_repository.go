package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bagdasarian/openreview-store/internal/domain"
)

const findingColumns = `
	SELECT id, review_id, type, severity, file, message, line, comment_id, created_at
	FROM findings
`

type findingRepository struct {
	db       *sql.DB
	executor DBExecutor
}

func NewFindingRepository(db *sql.DB) *findingRepository {
	return &findingRepository{db: db, executor: db}
}

// NewFindingRepositoryWithTx binds the repository to an outer transaction;
// SaveAll then writes through it instead of opening its own.
func NewFindingRepositoryWithTx(tx *sql.Tx) *findingRepository {
	return &findingRepository{executor: tx}
}

func scanFinding(row rowScanner) (*domain.Finding, error) {
	finding := &domain.Finding{}
	var findingType, severity string
	var commentID sql.NullInt64
	err := row.Scan(
		&finding.ID,
		&finding.ReviewID,
		&findingType,
		&severity,
		&finding.File,
		&finding.Message,
		&finding.Line,
		&commentID,
		&finding.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finding.Type, err = domain.DecodeFindingType(findingType); err != nil {
		return nil, err
	}
	if finding.Severity, err = domain.DecodeSeverityLevel(severity); err != nil {
		return nil, err
	}
	finding.CommentID = int64Ptr(commentID)

	return finding, nil
}

func (r *findingRepository) queryFindings(ctx context.Context, query string, args ...any) ([]*domain.Finding, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	findings := make([]*domain.Finding, 0)
	for rows.Next() {
		finding, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		findings = append(findings, finding)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}

func validateFinding(i int, f *domain.Finding) error {
	if f == nil {
		return domain.NewInvalidArgumentError("finding #%d is nil", i)
	}
	if f.ReviewID == "" {
		return domain.NewInvalidArgumentError("finding #%d: review id is required", i)
	}
	if !f.Type.Valid() {
		return domain.NewInvalidArgumentError("finding #%d: unknown finding type %q", i, f.Type)
	}
	if !f.Severity.Valid() {
		return domain.NewInvalidArgumentError("finding #%d: unknown severity level %q", i, f.Severity)
	}
	if strings.TrimSpace(f.File) == "" {
		return domain.NewInvalidArgumentError("finding #%d: file is required", i)
	}
	return nil
}

// SaveAll inserts a batch of findings atomically: either every finding is
// stored or none is.
func (r *findingRepository) SaveAll(ctx context.Context, findings []*domain.Finding) (err error) {
	if len(findings) == 0 {
		return nil
	}
	for i, f := range findings {
		if err := validateFinding(i, f); err != nil {
			return err
		}
	}
	defer observe(ctx, findingsRepo, "save_all", time.Now(), &err)

	if r.db == nil {
		return r.insertFindings(ctx, r.executor, findings)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.insertFindings(ctx, tx, findings); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *findingRepository) insertFindings(ctx context.Context, executor DBExecutor, findings []*domain.Finding) error {
	query := `
		INSERT INTO findings (id, review_id, type, severity, file, message, line, comment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	for _, f := range findings {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}

		_, err := executor.ExecContext(
			ctx,
			query,
			f.ID,
			f.ReviewID,
			string(f.Type),
			string(f.Severity),
			f.File,
			f.Message,
			f.Line,
			nullInt64(f.CommentID),
			f.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert finding %s: %w", f.ID, err)
		}
	}

	return nil
}

// MarkCommented records the external comment id once. A finding that already
// carries a comment id is left untouched.
func (r *findingRepository) MarkCommented(ctx context.Context, findingID string, commentID int64) (err error) {
	if findingID == "" {
		return domain.NewInvalidArgumentError("finding id is required")
	}
	if commentID <= 0 {
		return domain.NewInvalidArgumentError("comment id must be positive, got %d", commentID)
	}
	defer observe(ctx, findingsRepo, "mark_commented", time.Now(), &err)

	result, err := r.executor.ExecContext(
		ctx,
		"UPDATE findings SET comment_id = $2 WHERE id = $1 AND comment_id IS NULL",
		findingID,
		commentID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 1 {
		return nil
	}

	var existing sql.NullInt64
	err = r.executor.QueryRowContext(ctx, "SELECT comment_id FROM findings WHERE id = $1", findingID).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("finding")
		}
		return err
	}

	return domain.ErrAlreadyCommented
}

func (r *findingRepository) GetByID(ctx context.Context, id string) (finding *domain.Finding, err error) {
	if id == "" {
		return nil, domain.NewInvalidArgumentError("finding id is required")
	}
	defer observe(ctx, findingsRepo, "get_by_id", time.Now(), &err)

	finding, err = scanFinding(r.executor.QueryRowContext(ctx, findingColumns+`WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("finding")
		}
		return nil, err
	}
	return finding, nil
}

func (r *findingRepository) FindByReview(ctx context.Context, reviewID string) (findings []*domain.Finding, err error) {
	if reviewID == "" {
		return nil, domain.NewInvalidArgumentError("review id is required")
	}
	defer observe(ctx, findingsRepo, "find_by_review", time.Now(), &err)

	return r.queryFindings(ctx, findingColumns+`WHERE review_id = $1 ORDER BY created_at, id`, reviewID)
}

func (r *findingRepository) FindByType(ctx context.Context, findingType domain.FindingType) (findings []*domain.Finding, err error) {
	if _, err := domain.ParseFindingType(string(findingType)); err != nil {
		return nil, err
	}
	defer observe(ctx, findingsRepo, "find_by_type", time.Now(), &err)

	return r.queryFindings(ctx, findingColumns+`WHERE type = $1 ORDER BY created_at, id`, string(findingType))
}

func (r *findingRepository) FindBySeverity(ctx context.Context, severity domain.SeverityLevel) (findings []*domain.Finding, err error) {
	if _, err := domain.ParseSeverityLevel(string(severity)); err != nil {
		return nil, err
	}
	defer observe(ctx, findingsRepo, "find_by_severity", time.Now(), &err)

	return r.queryFindings(ctx, findingColumns+`WHERE severity = $1 ORDER BY created_at, id`, string(severity))
}

func (r *findingRepository) FindByFile(ctx context.Context, file string) (findings []*domain.Finding, err error) {
	if file == "" {
		return nil, domain.NewInvalidArgumentError("file is required")
	}
	defer observe(ctx, findingsRepo, "find_by_file", time.Now(), &err)

	return r.queryFindings(ctx, findingColumns+`WHERE file = $1 ORDER BY created_at, id`, file)
}

func (r *findingRepository) FindByReviewAndSeverity(ctx context.Context, reviewID string, severity domain.SeverityLevel) (findings []*domain.Finding, err error) {
	if reviewID == "" {
		return nil, domain.NewInvalidArgumentError("review id is required")
	}
	if _, err := domain.ParseSeverityLevel(string(severity)); err != nil {
		return nil, err
	}
	defer observe(ctx, findingsRepo, "find_by_review_and_severity", time.Now(), &err)

	query := findingColumns + `WHERE review_id = $1 AND severity = $2 ORDER BY created_at, id`
	return r.queryFindings(ctx, query, reviewID, string(severity))
}

func (r *findingRepository) CountByReviewAndType(ctx context.Context, reviewID string, findingType domain.FindingType) (count int64, err error) {
	if reviewID == "" {
		return 0, domain.NewInvalidArgumentError("review id is required")
	}
	if _, err := domain.ParseFindingType(string(findingType)); err != nil {
		return 0, err
	}
	defer observe(ctx, findingsRepo, "count_by_review_and_type", time.Now(), &err)

	err = r.executor.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM findings WHERE review_id = $1 AND type = $2",
		reviewID,
		string(findingType),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MostCommonTypes groups all findings by type, most frequent first. Equal
// counts are ordered by type name so the output is deterministic.
func (r *findingRepository) MostCommonTypes(ctx context.Context) (counts []domain.FindingTypeCount, err error) {
	defer observe(ctx, findingsRepo, "most_common_types", time.Now(), &err)

	query := `
		SELECT type, COUNT(*) AS cnt
		FROM findings
		GROUP BY type
		ORDER BY cnt DESC, type ASC
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts = make([]domain.FindingTypeCount, 0)
	for rows.Next() {
		var findingType string
		var count int64
		if err := rows.Scan(&findingType, &count); err != nil {
			return nil, err
		}
		t, err := domain.DecodeFindingType(findingType)
		if err != nil {
			return nil, err
		}
		counts = append(counts, domain.FindingTypeCount{Type: t, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *findingRepository) FindWithoutComment(ctx context.Context) (findings []*domain.Finding, err error) {
	defer observe(ctx, findingsRepo, "find_without_comment", time.Now(), &err)

	return r.queryFindings(ctx, findingColumns+`WHERE comment_id IS NULL ORDER BY created_at, id`)
}
