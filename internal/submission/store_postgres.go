package submission

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"ptz-simulator/internal/eligibility"
)

// PostgresStore persists submissions in PostgreSQL. Append is a single
// INSERT, so concurrent submitters never lose records the way the old
// read-modify-write flat file could.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id                  UUID PRIMARY KEY,
	identity_key        TEXT NOT NULL,
	first_name          TEXT NOT NULL,
	last_name           TEXT NOT NULL,
	email               TEXT NOT NULL,
	phone               TEXT NOT NULL DEFAULT '',
	address             TEXT NOT NULL DEFAULT '',
	commune             TEXT NOT NULL DEFAULT '',
	not_prior_owner     BOOLEAN NOT NULL DEFAULT FALSE,
	household_size      INTEGER NOT NULL,
	zone                TEXT NOT NULL,
	income              INTEGER NOT NULL,
	housing_type        TEXT NOT NULL,
	project_cost        INTEGER NOT NULL,
	eligible            BOOLEAN NOT NULL,
	bracket             INTEGER NOT NULL DEFAULT 0,
	quota_percent       INTEGER NOT NULL DEFAULT 0,
	cost_ceiling        INTEGER NOT NULL DEFAULT 0,
	capped_project_cost INTEGER NOT NULL DEFAULT 0,
	loan_amount         INTEGER NOT NULL DEFAULT 0,
	reason              TEXT NOT NULL DEFAULT '',
	submitted_at        TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS submissions_identity_key_idx ON submissions (identity_key);
`

// EnsureSchema creates the submissions table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

const insertSubmission = `
INSERT INTO submissions (
	id, identity_key, first_name, last_name, email, phone, address, commune,
	not_prior_owner, household_size, zone, income, housing_type, project_cost,
	eligible, bracket, quota_percent, cost_ceiling, capped_project_cost,
	loan_amount, reason, submitted_at, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`

func (s *PostgresStore) Append(ctx context.Context, sub Submission) error {
	if _, err := s.db.ExecContext(ctx, insertSubmission, insertArgs(sub)...); err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

const selectSubmissions = `
SELECT id, identity_key, first_name, last_name, email, phone, address, commune,
	not_prior_owner, household_size, zone, income, housing_type, project_cost,
	eligible, bracket, quota_percent, cost_ceiling, capped_project_cost,
	loan_amount, reason, submitted_at, created_at
FROM submissions
ORDER BY created_at DESC`

func (s *PostgresStore) ListAll(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, selectSubmissions)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// ReplaceAll swaps the whole collection inside one transaction so readers
// never observe a half-written state.
func (s *PostgresStore) ReplaceAll(ctx context.Context, subs []Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace submissions: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions`); err != nil {
		return fmt.Errorf("replace submissions: clear: %w", err)
	}
	for _, sub := range subs {
		if _, err := tx.ExecContext(ctx, insertSubmission, insertArgs(sub)...); err != nil {
			return fmt.Errorf("replace submissions: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace submissions: commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteByKeys(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM submissions WHERE identity_key = ANY($1)`, pq.Array(keys))
	if err != nil {
		return 0, fmt.Errorf("delete submissions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete submissions: rows affected: %w", err)
	}
	return int(affected), nil
}

func insertArgs(sub Submission) []any {
	return []any{
		sub.ID, sub.IdentityKey(), sub.FirstName, sub.LastName, sub.Email,
		sub.Phone, sub.Address, sub.Commune, sub.NotPriorOwner,
		sub.HouseholdSize, string(sub.Zone), sub.Income,
		string(sub.HousingType), sub.ProjectCost, sub.Eligible, sub.Bracket,
		sub.QuotaPercent, sub.CostCeiling, sub.CappedProjectCost,
		sub.LoanAmount, sub.Reason, sub.SubmittedAt, sub.CreatedAt,
	}
}

func scanSubmission(rows *sql.Rows) (Submission, error) {
	var (
		sub         Submission
		identityKey string
		zone        string
		housing     string
	)
	err := rows.Scan(
		&sub.ID, &identityKey, &sub.FirstName, &sub.LastName, &sub.Email,
		&sub.Phone, &sub.Address, &sub.Commune, &sub.NotPriorOwner,
		&sub.HouseholdSize, &zone, &sub.Income, &housing, &sub.ProjectCost,
		&sub.Eligible, &sub.Bracket, &sub.QuotaPercent, &sub.CostCeiling,
		&sub.CappedProjectCost, &sub.LoanAmount, &sub.Reason,
		&sub.SubmittedAt, &sub.CreatedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	sub.Zone = eligibility.Zone(zone)
	sub.HousingType = eligibility.HousingType(housing)
	return sub, nil
}
