package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
)

// --- CategoryRepository implementation ---

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	const query = `INSERT INTO categories (id, name, description, image_url, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, c.ID, c.Name, c.Description, c.ImageURL, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*model.Category, error) {
	const query = `SELECT id, name, description, image_url, created_at FROM categories WHERE id=$1`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, description, image_url, created_at FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

type productOption struct {
	Unit         string          `json:"unit"`
	UnitSize     string          `json:"unitSize,omitempty"`
	Quantity     int             `json:"quantity"`
	MRP          decimal.Decimal `json:"mrp"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	SpecialPrice decimal.Decimal `json:"specialPrice"`
}

// productData is the JSONB body of a product row.
type productData struct {
	Name        string          `json:"name"`
	NameTamil   string          `json:"nameTamil,omitempty"`
	Description string          `json:"description,omitempty"`
	Keywords    []string        `json:"keywords,omitempty"`
	Options     []productOption `json:"options,omitempty"`
	ImageURLs   []string        `json:"imageUrls,omitempty"`
	OfferBand   bool            `json:"showOfferBand,omitempty"`
}

type productLocation struct {
	Code  string `json:"code"`
	Rack  int    `json:"rack"`
	Shelf int    `json:"shelf"`
	Bin   int    `json:"bin"`
}

func encodeProduct(p *model.Product) (string, error) {
	data := productData{
		Name:        p.Name,
		NameTamil:   p.NameTamil,
		Description: p.Description,
		Keywords:    p.Keywords,
		ImageURLs:   p.ImageURLs,
		OfferBand:   p.ShowOfferBand,
	}
	for _, o := range p.Options {
		data.Options = append(data.Options, productOption(o))
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode product: %w", err)
	}
	return string(raw), nil
}

func encodeLocation(l *model.ProductLocation) (*string, error) {
	if l == nil {
		return nil, nil
	}
	raw, err := json.Marshal(productLocation(*l))
	if err != nil {
		return nil, fmt.Errorf("encode product location: %w", err)
	}
	s := string(raw)
	return &s, nil
}

const productColumns = `SELECT category, id, product_number, data, location, created_at, updated_at FROM products`

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p        model.Product
		data     []byte
		location []byte
	)
	if err := row.Scan(&p.Category, &p.ID, &p.ProductNumber, &data, &location, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Product{}, err
	}
	var body productData
	if err := json.Unmarshal(data, &body); err != nil {
		return model.Product{}, fmt.Errorf("decode product: %w", err)
	}
	p.Name = body.Name
	p.NameTamil = body.NameTamil
	p.Description = body.Description
	p.Keywords = body.Keywords
	p.ImageURLs = body.ImageURLs
	p.ShowOfferBand = body.OfferBand
	for _, o := range body.Options {
		p.Options = append(p.Options, model.ProductOption(o))
	}
	if len(location) > 0 {
		var l productLocation
		if err := json.Unmarshal(location, &l); err != nil {
			return model.Product{}, fmt.Errorf("decode product location: %w", err)
		}
		loc := model.ProductLocation(l)
		p.Location = &loc
	}
	return p, nil
}

// Create numbers the product under a per-category advisory lock.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	data, err := encodeProduct(p)
	if err != nil {
		return err
	}
	location, err := encodeLocation(p.Location)
	if err != nil {
		return err
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, p.Category); err != nil {
			return err
		}
		var next int
		const nextQuery = `SELECT COALESCE(MAX(product_number), 0) + 1 FROM products WHERE category=$1`
		if err := tx.QueryRow(ctx, nextQuery, p.Category).Scan(&next); err != nil {
			return err
		}
		const insert = `INSERT INTO products (category, id, product_number, data, location, created_at, updated_at)
                        VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)`
		if _, err := tx.Exec(ctx, insert, p.Category, p.ID, next, data, location, p.CreatedAt, p.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		p.ProductNumber = next
		return nil
	})
}

func (r *productRepository) Get(ctx context.Context, category, id string) (*model.Product, error) {
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, productColumns+` WHERE category=$1 AND id=$2`, category, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, productColumns+` WHERE category=$1 ORDER BY product_number`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) UpdateLocation(ctx context.Context, category, id string, location *model.ProductLocation) error {
	const query = `UPDATE products SET location=$3::jsonb, updated_at=$4 WHERE category=$1 AND id=$2`
	encoded, err := encodeLocation(location)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, category, id, encoded, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) SetOfferBand(ctx context.Context, category, id string, show bool) error {
	const query = `UPDATE products
                   SET data = jsonb_set(data, '{showOfferBand}', to_jsonb($3::boolean)), updated_at=$4
                   WHERE category=$1 AND id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, category, id, show, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, category, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE category=$1 AND id=$2`, category, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OfferMessageRepository implementation ---

func (r *offerMessageRepository) Create(ctx context.Context, m *model.OfferMessage) error {
	const query = `INSERT INTO offer_messages (id, text, position, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, m.ID, m.Text, m.Position, m.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *offerMessageRepository) List(ctx context.Context) ([]model.OfferMessage, error) {
	const query = `SELECT id, text, position, created_at FROM offer_messages ORDER BY position, created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OfferMessage
	for rows.Next() {
		var m model.OfferMessage
		if err := rows.Scan(&m.ID, &m.Text, &m.Position, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *offerMessageRepository) Update(ctx context.Context, m *model.OfferMessage) error {
	const query = `UPDATE offer_messages SET text=$2, position=$3 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, m.ID, m.Text, m.Position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *offerMessageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM offer_messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
