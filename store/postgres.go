package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"

	"github.com/intervention-engine/strokerisk/plugin"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS stroke_checks (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	checked_at  TIMESTAMPTZ NOT NULL,
	input       JSONB NOT NULL,
	result      JSONB NOT NULL,
	circulatory JSONB,
	assessments JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS stroke_checks_checked_at_idx ON stroke_checks (checked_at DESC);
CREATE TABLE IF NOT EXISTS risk_pies (
	id      TEXT PRIMARY KEY,
	subject TEXT NOT NULL,
	created TIMESTAMPTZ NOT NULL,
	slices  JSONB NOT NULL
);
`

// OpenPostgres opens a connection pool to PostgreSQL and verifies it with a ping
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// PostgresStore keeps checks in the stroke_checks table and pies in risk_pies.  The input, results and
// assessments of a check are stored as JSONB documents.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// EnsureSchema creates the tables and indexes if they do not exist yet
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (p *PostgresStore) SaveCheck(ctx context.Context, check *Check) error {
	input, err := json.Marshal(check.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	result, err := json.Marshal(check.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	// NULL when the circulatory engine did not apply
	var circulatory any
	if check.Circulatory != nil {
		b, err := json.Marshal(check.Circulatory)
		if err != nil {
			return fmt.Errorf("failed to marshal circulatory result: %w", err)
		}
		circulatory = string(b)
	}
	assessments := check.Assessments
	if assessments == nil {
		assessments = []Assessment{}
	}
	assessmentsJSON, err := json.Marshal(assessments)
	if err != nil {
		return fmt.Errorf("failed to marshal assessments: %w", err)
	}

	query := `
		INSERT INTO stroke_checks (id, name, checked_at, input, result, circulatory, assessments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = p.db.ExecContext(ctx, query,
		check.ID, check.Name, check.CheckedAt, string(input), string(result), circulatory, string(assessmentsJSON))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert check: %w", err)
	}
	p.logger.Debug("check saved", zap.String("check_id", check.ID))
	return nil
}

func (p *PostgresStore) FindCheck(ctx context.Context, id string) (*Check, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query := `
		SELECT id, name, checked_at, input, result, circulatory, assessments
		FROM stroke_checks
		WHERE id = $1
	`
	check, err := scanCheck(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query check: %w", err)
	}
	return check, nil
}

func (p *PostgresStore) ListChecks(ctx context.Context, limit int) ([]*Check, error) {
	query := `
		SELECT id, name, checked_at, input, result, circulatory, assessments
		FROM stroke_checks
		ORDER BY checked_at DESC, id
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	checks := []*Check{}
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheck(row rowScanner) (*Check, error) {
	var check Check
	var input, result, circulatory, assessments []byte
	if err := row.Scan(&check.ID, &check.Name, &check.CheckedAt, &input, &result, &circulatory, &assessments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(input, &check.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	if err := json.Unmarshal(result, &check.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	if circulatory != nil {
		if err := json.Unmarshal(circulatory, &check.Circulatory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal circulatory result: %w", err)
		}
	}
	if err := json.Unmarshal(assessments, &check.Assessments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessments: %w", err)
	}
	return &check, nil
}

func (p *PostgresStore) SavePie(ctx context.Context, pie *plugin.Pie) error {
	slices, err := json.Marshal(pie.Slices)
	if err != nil {
		return fmt.Errorf("failed to marshal slices: %w", err)
	}
	query := `
		INSERT INTO risk_pies (id, subject, created, slices)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := p.db.ExecContext(ctx, query, pie.Id.Hex(), pie.Subject, pie.Created, string(slices)); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert pie: %w", err)
	}
	return nil
}

func (p *PostgresStore) FindPie(ctx context.Context, id string) (*plugin.Pie, error) {
	if !bson.IsObjectIdHex(id) {
		return nil, ErrNotFound
	}
	query := `
		SELECT id, subject, created, slices
		FROM risk_pies
		WHERE id = $1
	`
	var hex string
	var slices []byte
	pie := &plugin.Pie{}
	err := p.db.QueryRowContext(ctx, query, id).Scan(&hex, &pie.Subject, &pie.Created, &slices)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query pie: %w", err)
	}
	pie.Id = bson.ObjectIdHex(hex)
	if err := json.Unmarshal(slices, &pie.Slices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slices: %w", err)
	}
	return pie, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
