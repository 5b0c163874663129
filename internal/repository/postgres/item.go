package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikerent-backend/internal/domain"
	"bikerent-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, kind, name, barcode, size, price_hourly, price_daily, insurance_available, insurance_flat_amount, status, notes, created_on, updated_on`

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (id, kind, name, barcode, size, price_hourly, price_daily, insurance_available, insurance_flat_amount, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query, it.ID, it.Kind, it.Name, it.Barcode, it.Size, it.PriceHourly, it.PriceDaily, it.InsuranceAvailable, it.InsuranceFlatAmount, it.Status, it.Notes, time.Now(), time.Now())
	return err
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) GetByBarcode(ctx context.Context, barcode string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE barcode = $1 AND status != 'RETIRED'`
	return r.scanOne(r.db.QueryRowContext(ctx, query, barcode))
}

func (r *itemRepository) scanOne(row *sql.Row) (*domain.Item, error) {
	it := &domain.Item{}
	err := row.Scan(&it.ID, &it.Kind, &it.Name, &it.Barcode, &it.Size, &it.PriceHourly, &it.PriceDaily, &it.InsuranceAvailable, &it.InsuranceFlatAmount, &it.Status, &it.Notes, &it.CreatedOn, &it.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET kind=$1, name=$2, barcode=$3, size=$4, price_hourly=$5, price_daily=$6, insurance_available=$7, insurance_flat_amount=$8, status=$9, notes=$10, updated_on=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query, it.Kind, it.Name, it.Barcode, it.Size, it.PriceHourly, it.PriceDaily, it.InsuranceAvailable, it.InsuranceFlatAmount, it.Status, it.Notes, time.Now(), it.ID)
	return err
}

func (r *itemRepository) SetStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	query := `UPDATE items SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	// Retire rather than remove: historical rental lines reference the item.
	query := `UPDATE items SET status='RETIRED', updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *itemRepository) List(ctx context.Context, kind, status string, page, pageSize int32) ([]domain.Item, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, kind)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Kind, &it.Name, &it.Barcode, &it.Size, &it.PriceHourly, &it.PriceDaily, &it.InsuranceAvailable, &it.InsuranceFlatAmount, &it.Status, &it.Notes, &it.CreatedOn, &it.UpdatedOn); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}
