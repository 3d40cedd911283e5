package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

func (r *locationRepository) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT code FROM locations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *locationRepository) Get(ctx context.Context, code string) (*model.Location, error) {
	var raw []byte
	err := r.storage.pool.QueryRow(ctx, `SELECT data FROM locations WHERE code=$1`, code).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return &model.Location{Code: code, Fields: doc}, nil
}

// Reserve inserts the slot row. The primary key on code makes the existence
// check and the write a single atomic step.
func (r *locationRepository) Reserve(ctx context.Context, code string, fields model.Document) error {
	const query = `INSERT INTO locations (code, data) VALUES ($1, $2::jsonb)
                   ON CONFLICT (code) DO NOTHING`
	doc, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, code, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrLocationConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrLocationConflict
	}
	return nil
}

func (r *locationRepository) Annotate(ctx context.Context, code string, fields, onCreate model.Document) error {
	const query = `INSERT INTO locations (code, data) VALUES ($1, $3::jsonb || $2::jsonb)
                   ON CONFLICT (code) DO UPDATE SET data = locations.data || $2::jsonb`
	doc, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	initial, err := encodeDocument(onCreate)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, query, code, doc, initial)
	return err
}
