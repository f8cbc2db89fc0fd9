package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const (
	customerTable  = "customer_master"
	documentsTable = "documents_master"
)

// CustomerRepo covers customer_master and the documents_master row that
// belongs to each customer. Customers are addressed by customer_uuid.
type CustomerRepo struct{ store *database.Store }

func NewCustomerRepo(store *database.Store) *CustomerRepo { return &CustomerRepo{store: store} }

func (r *CustomerRepo) ByUUID(ctx context.Context, uuid string) (model.Customer, error) {
	var c model.Customer
	err := r.store.Get(ctx, &c, customerTable, model.CustomerColumns,
		database.Where{"customer_uuid": uuid, "is_deleted": live})
	return c, notFound(err, "get customer")
}

func (r *CustomerRepo) ByUserName(ctx context.Context, userName string) (model.Customer, error) {
	var c model.Customer
	err := r.store.Get(ctx, &c, customerTable, model.CustomerColumns,
		database.Where{"user_name": userName, "is_deleted": live})
	return c, notFound(err, "get customer by user name")
}

// EmailTaken reports whether companyID already has a live customer using
// email. The same email may be registered with other companies.
func (r *CustomerRepo) EmailTaken(ctx context.Context, email, companyID string) (bool, error) {
	var ids []int64
	err := r.store.Find(ctx, &ids, customerTable, []string{"customer_id"},
		database.Where{"email_id": email, "_company_id": companyID, "is_deleted": live})
	if err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}
	return len(ids) > 0, nil
}

func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Customer, error) {
	out := []model.Customer{}
	err := r.store.Find(ctx, &out, customerTable, model.CustomerColumns,
		database.Where{"_company_id": companyID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

func (r *CustomerRepo) Create(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, customerTable, row); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, uuid string, patch database.Row) error {
	err := r.store.Update(ctx, customerTable, patch, database.Where{"customer_uuid": uuid, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, uuid string) error {
	return r.Update(ctx, uuid, softDelete())
}

// Documents returns the customer's documents, or ErrNotFound when none
// were uploaded yet.
func (r *CustomerRepo) Documents(ctx context.Context, uuid string) (model.Documents, error) {
	var d model.Documents
	err := r.store.Get(ctx, &d, documentsTable, model.DocumentsColumns,
		database.Where{"_customer_id": uuid, "is_deleted": live})
	return d, notFound(err, "get documents")
}

// DocumentsOf loads the documents of several customers keyed by uuid.
func (r *CustomerRepo) DocumentsOf(ctx context.Context, uuids []string) (map[string]model.Documents, error) {
	var rows []model.Documents
	q := "SELECT " + joinColumns(model.DocumentsColumns) + " FROM " + documentsTable +
		" WHERE _customer_id IN (?) AND is_deleted = ?"
	if err := r.store.SelectIn(ctx, &rows, q, uuids, live); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make(map[string]model.Documents, len(rows))
	for _, d := range rows {
		if _, seen := out[d.CustomerID]; !seen {
			out[d.CustomerID] = d
		}
	}
	return out, nil
}

func (r *CustomerRepo) CreateDocuments(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, documentsTable, row); err != nil {
		return fmt.Errorf("create documents: %w", err)
	}
	return nil
}

func (r *CustomerRepo) UpdateDocuments(ctx context.Context, uuid string, patch database.Row) error {
	err := r.store.Update(ctx, documentsTable, patch, database.Where{"_customer_id": uuid, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update documents: %w", err)
	}
	return nil
}

func (r *CustomerRepo) SoftDeleteDocuments(ctx context.Context, uuid string) error {
	return r.UpdateDocuments(ctx, uuid, softDelete())
}
