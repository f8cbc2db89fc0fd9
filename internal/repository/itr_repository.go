package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

// Income tax return filings. itr_url holds a JSON array of document URLs
// and year is free text such as "2023-24".
const itrTable = "itr_master"

// ITRRepo reads and writes itr_master rows.
type ITRRepo struct {
	store *database.Store // shared data access facade
}

// NewITRRepo wires an ITRRepo to store.
func NewITRRepo(store *database.Store) *ITRRepo { return &ITRRepo{store: store} }

// ByID loads a live filing or returns ErrNotFound.
func (r *ITRRepo) ByID(ctx context.Context, id int64) (model.ITR, error) {
	var i model.ITR
	err := r.store.Get(ctx, &i, itrTable, model.ITRColumns, database.Where{"itr_id": id, "is_deleted": live})
	return i, notFound(err, "get itr")
}

// ListByCustomer returns the filings of the customer with uuid customerID.
func (r *ITRRepo) ListByCustomer(ctx context.Context, customerID string) ([]model.ITR, error) {
	out := []model.ITR{}
	err := r.store.Find(ctx, &out, itrTable, model.ITRColumns,
		database.Where{"_customer_id": customerID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list itr: %w", err)
	}
	return out, nil
}

// Create records a filing for customerID. urls is stored as a JSON array.
func (r *ITRRepo) Create(ctx context.Context, customerID, year string, urls model.StringList) error {
	err := r.store.Insert(ctx, itrTable, database.Row{"_customer_id": customerID, "year": year, "itr_url": urls})
	if err != nil {
		return fmt.Errorf("create itr: %w", err)
	}
	return nil
}

// Update patches a live filing; a nil itr_url leaves the stored list alone.
func (r *ITRRepo) Update(ctx context.Context, id int64, patch database.Row) error {
	err := r.store.Update(ctx, itrTable, patch, database.Where{"itr_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update itr: %w", err)
	}
	return nil
}

func (r *ITRRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.Update(ctx, id, softDelete())
}
