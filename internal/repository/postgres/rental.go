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

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, contract_no, customer_name, customer_phone, customer_email, customer_doc, mode, status, start_at, end_at, locked_final_amount, custom_final_amount, custom_final_reason, contract_insurance_flat, notes, created_on, updated_on`

const rentalItemColumns = `id, item_id, kind, name, price_hourly, price_daily, insurance_enabled, insurance_flat_amount, custom_price_override, returned_at`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rentals (id, contract_no, customer_name, customer_phone, customer_email, customer_doc, mode, status, start_at, end_at, locked_final_amount, custom_final_amount, custom_final_reason, contract_insurance_flat, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = tx.ExecContext(ctx, query,
		rt.ID, rt.ContractNo, rt.CustomerName, rt.CustomerPhone, rt.CustomerEmail, rt.CustomerDoc,
		rt.Mode, rt.Status, rt.StartAt, rt.EndAt,
		rt.LockedFinalAmount, rt.CustomFinalAmount, rt.CustomFinalReason, rt.ContractInsuranceFlat,
		rt.Notes, time.Now(), time.Now())
	if err != nil {
		return err
	}

	for i := range rt.Items {
		if err := insertRentalItem(ctx, tx, rt.ID, &rt.Items[i]); err != nil {
			return err
		}
	}
	for _, ec := range rt.ExtraCharges {
		if err := insertExtraCharge(ctx, tx, rt.ID, ec); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertRentalItem(ctx context.Context, tx *sql.Tx, rentalID string, it *domain.RentalItem) error {
	query := `INSERT INTO rental_items (id, rental_id, item_id, kind, name, price_hourly, price_daily, insurance_enabled, insurance_flat_amount, custom_price_override, returned_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := tx.ExecContext(ctx, query, it.ID, rentalID, it.ItemID, it.Kind, it.Name, it.PriceHourly, it.PriceDaily, it.InsuranceEnabled, it.InsuranceFlatAmount, it.CustomPriceOverride, it.ReturnedAt)
	return err
}

func insertExtraCharge(ctx context.Context, tx *sql.Tx, rentalID string, ec domain.ExtraCharge) error {
	query := `INSERT INTO rental_extra_charges (rental_id, description, amount) VALUES ($1, $2, $3)`
	_, err := tx.ExecContext(ctx, query, rentalID, ec.Description, ec.Amount)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.ContractNo, &rt.CustomerName, &rt.CustomerPhone, &rt.CustomerEmail, &rt.CustomerDoc,
		&rt.Mode, &rt.Status, &rt.StartAt, &rt.EndAt,
		&rt.LockedFinalAmount, &rt.CustomFinalAmount, &rt.CustomFinalReason, &rt.ContractInsuranceFlat,
		&rt.Notes, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) loadChildren(ctx context.Context, rt *domain.Rental) error {
	itemQuery := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, rt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.ItemID, &it.Kind, &it.Name, &it.PriceHourly, &it.PriceDaily, &it.InsuranceEnabled, &it.InsuranceFlatAmount, &it.CustomPriceOverride, &it.ReturnedAt); err != nil {
			return err
		}
		rt.Items = append(rt.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	chargeQuery := `SELECT description, amount FROM rental_extra_charges WHERE rental_id = $1 ORDER BY id`
	crows, err := r.db.QueryContext(ctx, chargeQuery, rt.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		var ec domain.ExtraCharge
		if err := crows.Scan(&ec.Description, &ec.Amount); err != nil {
			return err
		}
		rt.ExtraCharges = append(rt.ExtraCharges, ec)
	}
	return crows.Err()
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET customer_name=$1, customer_phone=$2, customer_email=$3, customer_doc=$4, status=$5, start_at=$6, end_at=$7, locked_final_amount=$8, custom_final_amount=$9, custom_final_reason=$10, contract_insurance_flat=$11, notes=$12, updated_on=$13 WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query,
		rt.CustomerName, rt.CustomerPhone, rt.CustomerEmail, rt.CustomerDoc,
		rt.Status, rt.StartAt, rt.EndAt,
		rt.LockedFinalAmount, rt.CustomFinalAmount, rt.CustomFinalReason, rt.ContractInsuranceFlat,
		rt.Notes, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) List(ctx context.Context, status, mode string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if mode != "" {
		query += fmt.Sprintf(" AND mode = $%d", argIdx)
		args = append(args, mode)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'COMPLETED' AND start_at >= $1 AND start_at < $2 ORDER BY start_at`
	rentals, err := r.queryRentals(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	// Reporting attributes revenue per line, so children are needed here.
	for i := range rentals {
		if err := r.loadChildren(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'OVERDUE' AND end_at < $1 ORDER BY end_at`
	return r.queryRentals(ctx, query, asOf)
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) AddItem(ctx context.Context, rentalID string, it *domain.RentalItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertRentalItem(ctx, tx, rentalID, it); err != nil {
		return err
	}
	if err := touchRental(ctx, tx, rentalID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) UpdateItem(ctx context.Context, rentalID string, it *domain.RentalItem) error {
	query := `UPDATE rental_items SET insurance_enabled=$1, insurance_flat_amount=$2, custom_price_override=$3, returned_at=$4 WHERE id=$5 AND rental_id=$6`
	res, err := r.db.ExecContext(ctx, query, it.InsuranceEnabled, it.InsuranceFlatAmount, it.CustomPriceOverride, it.ReturnedAt, it.ID, rentalID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) ReplaceExtraCharges(ctx context.Context, rentalID string, charges []domain.ExtraCharge) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_extra_charges WHERE rental_id = $1`, rentalID); err != nil {
		return err
	}
	for _, ec := range charges {
		if err := insertExtraCharge(ctx, tx, rentalID, ec); err != nil {
			return err
		}
	}
	if err := touchRental(ctx, tx, rentalID); err != nil {
		return err
	}
	return tx.Commit()
}

func touchRental(ctx context.Context, tx *sql.Tx, rentalID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE rentals SET updated_on=$1 WHERE id=$2`, time.Now(), rentalID)
	return err
}
