package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"productstudio/internal/domain"
	"productstudio/internal/infra"
	"productstudio/internal/sqlinline"
)

// ProductRepositoryPG implements domain.ProductRepository using PostgreSQL.
type ProductRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProductRepositoryPG constructs a new product repository instance.
func NewProductRepositoryPG(sql infra.SQLExecutor) *ProductRepositoryPG {
	return &ProductRepositoryPG{sql: sql}
}

// EnsureSchema creates the tables used by the Postgres repositories.
func EnsureSchema(ctx context.Context, sql infra.SQLExecutor) error {
	if _, err := sql.Exec(ctx, sqlinline.QEnsureProductSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *ProductRepositoryPG) FindBySKU(ctx context.Context, sku int64) (*domain.Product, error) {
	return scanProduct(r.sql.QueryRow(ctx, sqlinline.QSelectProductBySKU, sku), sku)
}

func (r *ProductRepositoryPG) ApplySlot(ctx context.Context, sku int64, slot domain.Slot, value string) (*domain.Product, error) {
	if _, err := domain.ParseSlot(string(slot)); err != nil {
		return nil, err
	}
	return scanProduct(r.sql.QueryRow(ctx, sqlinline.QApplyProductSlot, sku, string(slot), value), sku)
}

func (r *ProductRepositoryPG) MarkFulfilled(ctx context.Context, sku int64, at time.Time) (bool, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkProductFulfilled, sku, at)
	if err != nil {
		return false, fmt.Errorf("%w: mark sku %d fulfilled: %v", domain.ErrPersistFailed, sku, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ProductRepositoryPG) MarkPending(ctx context.Context, sku int64) (bool, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkProductPending, sku)
	if err != nil {
		return false, fmt.Errorf("%w: mark sku %d pending: %v", domain.ErrPersistFailed, sku, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanProduct(row pgx.Row, sku int64) (*domain.Product, error) {
	var p domain.Product
	var status string
	err := row.Scan(
		&p.SKU,
		&status,
		&p.Category,
		&p.PreImageURL,
		&p.WaxImageURL,
		&p.CastImageURL,
		&p.FinalImageURL,
		&p.WaxDescription,
		&p.CastDescription,
		&p.FinalDescription,
		&p.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("%w: sku %d", domain.ErrNotFound, sku)
		}
		return nil, fmt.Errorf("%w: load sku %d: %v", domain.ErrPersistFailed, sku, err)
	}
	p.Status = domain.ProductStatus(status)
	return &p, nil
}

var _ domain.ProductRepository = (*ProductRepositoryPG)(nil)
