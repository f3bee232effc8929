package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davin-ai/agriview/services/api/normalize"
)

// Postgres scans a hosted Postgres table via a pgx pool.
type Postgres struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgres connects a pool to the database holding the readings table.
func NewPostgres(ctx context.Context, databaseURL, table string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect readings database: %w", err)
	}
	return &Postgres{
		pool:  pool,
		query: "SELECT * FROM " + pgx.Identifier{table}.Sanitize(),
	}, nil
}

// Scan reads every row of the table. Column values are kept as whatever
// the driver decoded them to so loosely typed columns survive intact.
func (p *Postgres) Scan(ctx context.Context) ([]normalize.RawRecord, error) {
	rows, err := p.pool.Query(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("scan readings table: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := make([]normalize.RawRecord, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		rec := make(normalize.RawRecord, len(fields))
		for i, fd := range fields {
			rec[string(fd.Name)] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan readings table: %w", err)
	}
	return records, nil
}

// Close releases the pool resources.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
