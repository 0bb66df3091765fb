package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepo struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates the row store backed by the applications table.
func NewRecordRepository(db *pgxpool.Pool) domain.RowStore {
	return &recordRepo{db: db}
}

// updatableColumns whitelists the fields a partial update may touch. Anything
// else is a store-side rejection, consistent with validation authority living
// on this side of the engine.
var updatableColumns = map[string]bool{
	domain.FieldCompany:         true,
	domain.FieldPosition:        true,
	domain.FieldLocation:        true,
	domain.FieldJobType:         true,
	domain.FieldApplicationDate: true,
	domain.FieldDeadline:        true,
	domain.FieldStatus:          true,
	domain.FieldJobURL:          true,
	domain.FieldNotes:           true,
}

// SelectAll returns the user's records ordered by application_date descending
// with null dates last.
func (r *recordRepo) SelectAll(ctx context.Context, userID string) ([]domain.ApplicationRecord, error) {
	query := `
		SELECT id, user_id, company, position, location, job_type,
		       application_date, deadline, status, job_url, notes,
		       created_at, updated_at
		FROM applications
		WHERE user_id = $1
		ORDER BY application_date DESC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var records []domain.ApplicationRecord
	for rows.Next() {
		var rec domain.ApplicationRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Company, &rec.Position, &rec.Location, &rec.JobType,
			&rec.ApplicationDate, &rec.Deadline, &rec.Status, &rec.JobURL, &rec.Notes,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, classify(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return records, nil
}

// Insert persists a new record. Identity is always assigned here, never by
// the caller: the id column defaults to gen_random_uuid().
func (r *recordRepo) Insert(ctx context.Context, rec *domain.ApplicationRecord) error {
	query := `
		INSERT INTO applications (user_id, company, position, location, job_type,
		                          application_date, deadline, status, job_url, notes,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = domain.StatusWishlist
	}

	err := r.db.QueryRow(ctx, query,
		rec.UserID,
		rec.Company,
		rec.Position,
		rec.Location,
		rec.JobType,
		rec.ApplicationDate,
		rec.Deadline,
		rec.Status,
		rec.JobURL,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Update applies a partial update scoped by id and owner.
func (r *recordRepo) Update(ctx context.Context, userID, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("empty update: %w", domain.ErrRemoteRejected)
	}

	set := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+3)
	args = append(args, id, userID)
	for name, value := range fields {
		if !updatableColumns[name] {
			return fmt.Errorf("unknown column %q: %w", name, domain.ErrRemoteRejected)
		}
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", name, len(args)))
	}
	args = append(args, time.Now())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))

	query := fmt.Sprintf(
		`UPDATE applications SET %s WHERE id = $1 AND user_id = $2`,
		strings.Join(set, ", "),
	)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the record scoped by id and owner.
func (r *recordRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return classify(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// classify maps driver errors onto the engine's failure taxonomy. Data and
// constraint violations (SQLSTATE classes 22 and 23) plus malformed input are
// store-side rejections; everything else that reaches us is treated as the
// remote being unavailable.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		class := ""
		if len(pgErr.Code) >= 2 {
			class = pgErr.Code[:2]
		}
		switch class {
		case "22", "23":
			return fmt.Errorf("%s: %w", pgErr.Message, domain.ErrRemoteRejected)
		case "42":
			// undefined column / syntax is still a rejection of the payload
			return fmt.Errorf("%s: %w", pgErr.Message, domain.ErrRemoteRejected)
		}
	}
	return fmt.Errorf("%v: %w", err, domain.ErrRemoteUnavailable)
}
