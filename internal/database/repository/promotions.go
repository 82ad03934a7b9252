package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by updates that matched no row.
var ErrNotFound = errors.New("promotion not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PromotionRepo handles promotions.
type PromotionRepo struct {
	db DBTX
}

func NewPromotionRepo(db DBTX) *PromotionRepo { return &PromotionRepo{db: db} }

func (r *PromotionRepo) Upsert(ctx context.Context, p Promotion) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO promotions(id, placement, image_ref, link, title, sort_order, active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 placement=excluded.placement,
	 image_ref=excluded.image_ref,
	 link=excluded.link,
	 title=excluded.title,
	 sort_order=excluded.sort_order,
	 active=excluded.active,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Placement, p.ImageRef, p.Link, p.Title, p.SortOrder, p.Active)
	return err
}

func (r *PromotionRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE promotions SET active = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// Reorder assigns sort orders 0..len(ids)-1 in the given order. Callers
// that need atomicity pass a *sql.Tx.
func (r *PromotionRepo) Reorder(ctx context.Context, ids []string) error {
	for i, id := range ids {
		res, err := r.db.ExecContext(ctx, `UPDATE promotions SET sort_order = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, i, id)
		if err != nil {
			return fmt.Errorf("reorder %s: %w", id, err)
		}
		if err := requireRow(res, id); err != nil {
			return err
		}
	}
	return nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a promotion and reports whether a row existed.
func (r *PromotionRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PromotionRepo) List(ctx context.Context, f PromotionFilters) ([]Promotion, error) {
	var where []string
	var args []interface{}
	if f.Placement != "" {
		where = append(where, "placement = ?")
		args = append(args, f.Placement)
	}
	if f.ActiveOnly {
		where = append(where, "active = 1")
	}

	query := "SELECT id, placement, image_ref, link, title, sort_order, active, created_at, updated_at FROM promotions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY placement, sort_order, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PromotionRepo) Get(ctx context.Context, id string) (*Promotion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, placement, image_ref, link, title, sort_order, active, created_at, updated_at FROM promotions WHERE id = ?`, id)
	p, err := scanPromotion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// NextSortOrder returns one past the highest sort order in a placement.
func (r *PromotionRepo) NextSortOrder(ctx context.Context, placement string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM promotions WHERE placement = ?`, placement).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row scanner) (Promotion, error) {
	var p Promotion
	var link, title sql.NullString
	if err := row.Scan(&p.ID, &p.Placement, &p.ImageRef, &link, &title, &p.SortOrder, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Promotion{}, err
	}
	if link.Valid {
		p.Link = &link.String
	}
	if title.Valid {
		p.Title = &title.String
	}
	return p, nil
}
