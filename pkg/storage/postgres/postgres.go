package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/storage"
)

var storeTracer = otel.Tracer("advocates/storage/postgres")

const selectColumns = `id, first_name, last_name, city, degree, payload, years_of_experience, phone_number, created_at`

const (
	listQuery = `SELECT ` + selectColumns + ` FROM advocates LIMIT $1`

	phoneQuery = `SELECT ` + selectColumns + ` FROM advocates WHERE phone_number = $1`

	fullTextQuery = `SELECT ` + selectColumns + ` FROM advocates
		WHERE search_tsv @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(search_tsv, websearch_to_tsquery('english', $1)) DESC, id ASC
		LIMIT $2`

	insertQuery = `INSERT INTO advocates
		(first_name, last_name, city, degree, payload, years_of_experience, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
)

// Store implements storage.AdvocateStore on the advocates table
type Store struct {
	conn *ConnectionManager
}

var _ storage.AdvocateStore = (*Store)(nil)

// NewStore creates a store over an open connection manager
func NewStore(conn *ConnectionManager) *Store {
	return &Store{conn: conn}
}

// Open applies the schema on the primary and returns a store over conn
func Open(ctx context.Context, conn *ConnectionManager) (*Store, error) {
	if err := Migrate(ctx, conn.Primary()); err != nil {
		return nil, err
	}
	return NewStore(conn), nil
}

// List returns up to limit rows in table order. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]advocates.Advocate, error) {
	ctx, span := storeTracer.Start(ctx, "List",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	return s.query(ctx, span, listQuery, limitArg(limit))
}

// FindByPhone returns every row with an exactly matching phone number
func (s *Store) FindByPhone(ctx context.Context, phone int64) ([]advocates.Advocate, error) {
	ctx, span := storeTracer.Start(ctx, "FindByPhone")
	defer span.End()

	return s.query(ctx, span, phoneQuery, phone)
}

// FullText runs a websearch_to_tsquery match against search_tsv, ordered by ts_rank
func (s *Store) FullText(ctx context.Context, query string, limit int) ([]advocates.Advocate, error) {
	ctx, span := storeTracer.Start(ctx, "FullText",
		trace.WithAttributes(
			attribute.String("query", query),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	return s.query(ctx, span, fullTextQuery, query, limitArg(limit))
}

// Insert writes records in one transaction and returns the assigned IDs
func (s *Store) Insert(ctx context.Context, records []advocates.Advocate) ([]int64, error) {
	ctx, span := storeTracer.Start(ctx, "Insert",
		trace.WithAttributes(attribute.Int("count", len(records))),
	)
	defer span.End()

	tx, err := s.conn.Primary().BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		var id int64
		err := tx.QueryRowContext(ctx, insertQuery,
			rec.FirstName,
			rec.LastName,
			rec.City,
			rec.Degree,
			rec.Specialties,
			rec.YearsOfExperience,
			rec.PhoneNumber,
		).Scan(&id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to insert advocate")
			return nil, fmt.Errorf("failed to insert advocate %s: %w", rec.FullName(), err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit")
		return nil, fmt.Errorf("failed to commit advocates: %w", err)
	}

	span.SetStatus(codes.Ok, "inserted")
	return ids, nil
}

// Close closes the underlying connections
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) query(ctx context.Context, span trace.Span, query string, args ...interface{}) ([]advocates.Advocate, error) {
	rows, err := s.conn.Replica().QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query advocates")
		return nil, fmt.Errorf("failed to query advocates: %w", err)
	}
	defer rows.Close()

	results, err := scanAdvocates(rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read advocates")
		return nil, err
	}

	span.SetAttributes(attribute.Int("result_count", len(results)))
	span.SetStatus(codes.Ok, "ok")
	return results, nil
}

func scanAdvocates(rows *sql.Rows) ([]advocates.Advocate, error) {
	results := make([]advocates.Advocate, 0)
	for rows.Next() {
		var (
			a         advocates.Advocate
			createdAt sql.NullTime
		)
		if err := rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.City,
			&a.Degree,
			&a.Specialties,
			&a.YearsOfExperience,
			&a.PhoneNumber,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advocate: %w", err)
		}
		if createdAt.Valid {
			t := createdAt.Time
			a.CreatedAt = &t
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advocates: %w", err)
	}

	return results, nil
}

// limitArg maps a non-positive limit to NULL, which PostgreSQL treats as LIMIT ALL
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}
