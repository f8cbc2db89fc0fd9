package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

// Categories are per company. A name is unique among the live categories of
// one company; a soft-deleted category frees its name again.
const categoryTable = "category_master"

// CategoryRepo reads and writes category_master rows.
type CategoryRepo struct {
	store *database.Store // shared data access facade
}

// NewCategoryRepo wires a CategoryRepo to store.
func NewCategoryRepo(store *database.Store) *CategoryRepo { return &CategoryRepo{store: store} }

// NameTaken reports whether companyID already has a live category called name.
func (r *CategoryRepo) NameTaken(ctx context.Context, companyID, name string) (bool, error) {
	var ids []int64
	err := r.store.Find(ctx, &ids, categoryTable, []string{"category_id"},
		database.Where{"_company_id": companyID, "category_name": name, "is_deleted": live})
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return len(ids) > 0, nil
}

// ByID loads a live category. It returns ErrNotFound when the id is unknown
// or the row is soft-deleted; company scoping is left to the caller.
func (r *CategoryRepo) ByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.store.Get(ctx, &c, categoryTable, model.CategoryColumns,
		database.Where{"category_id": id, "is_deleted": live})
	return c, notFound(err, "get category")
}

// ListByCompany returns the live categories of companyID. The result is
// never nil.
func (r *CategoryRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Category, error) {
	out := []model.Category{}
	err := r.store.Find(ctx, &out, categoryTable, model.CategoryColumns,
		database.Where{"_company_id": companyID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Create inserts a category; category_id and date_created come from the
// database.
func (r *CategoryRepo) Create(ctx context.Context, companyID, name string) error {
	err := r.store.Insert(ctx, categoryTable, database.Row{"category_name": name, "_company_id": companyID})
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update patches a live category. Nil patch values are skipped.
func (r *CategoryRepo) Update(ctx context.Context, id int64, patch database.Row) error {
	err := r.store.Update(ctx, categoryTable, patch, database.Where{"category_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SoftDelete sets is_deleted on the category.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.Update(ctx, id, softDelete())
}
