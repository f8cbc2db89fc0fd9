package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const employeeTable = "employee_master"

type EmployeeRepo struct{ store *database.Store }

func NewEmployeeRepo(store *database.Store) *EmployeeRepo { return &EmployeeRepo{store: store} }

// ByID loads a live employee.
func (r *EmployeeRepo) ByID(ctx context.Context, id string) (model.Employee, error) {
	var e model.Employee
	err := r.store.Get(ctx, &e, employeeTable, model.EmployeeColumns,
		database.Where{"employee_id": id, "is_deleted": live})
	return e, notFound(err, "get employee")
}

// ByUserName loads the live employee that logs in as userName.
func (r *EmployeeRepo) ByUserName(ctx context.Context, userName string) (model.Employee, error) {
	var e model.Employee
	err := r.store.Get(ctx, &e, employeeTable, model.EmployeeColumns,
		database.Where{"user_name": userName, "is_deleted": live})
	return e, notFound(err, "get employee by user name")
}

// EmailTaken reports whether a live employee already uses email.
func (r *EmployeeRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var ids []string
	err := r.store.Find(ctx, &ids, employeeTable, []string{"employee_id"},
		database.Where{"email_id": email, "is_deleted": live})
	if err != nil {
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return len(ids) > 0, nil
}

// CompanyName returns the name stored on any live employee of companyID,
// or "" when the company has none.
func (r *EmployeeRepo) CompanyName(ctx context.Context, companyID string) (string, error) {
	var names []*string
	err := r.store.Find(ctx, &names, employeeTable, []string{"company_name"},
		database.Where{"company_id": companyID, "is_deleted": live})
	if err != nil {
		return "", fmt.Errorf("get company name: %w", err)
	}
	for _, n := range names {
		if n != nil && *n != "" {
			return *n, nil
		}
	}
	return "", nil
}

// ListByCompany returns every live employee of companyID.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Employee, error) {
	out := []model.Employee{}
	err := r.store.Find(ctx, &out, employeeTable, model.EmployeeColumns,
		database.Where{"company_id": companyID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// Summaries is ListByCompany reduced to ids and names.
func (r *EmployeeRepo) Summaries(ctx context.Context, companyID string) ([]model.EmployeeSummary, error) {
	out := []model.EmployeeSummary{}
	err := r.store.Find(ctx, &out, employeeTable,
		[]string{"employee_id", "first_name", "middle_name", "last_name"},
		database.Where{"company_id": companyID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list employee summaries: %w", err)
	}
	return out, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, employeeTable, row); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update patches a live employee; nil values are left untouched.
func (r *EmployeeRepo) Update(ctx context.Context, id string, patch database.Row) error {
	err := r.store.Update(ctx, employeeTable, patch, database.Where{"employee_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	return r.Update(ctx, id, softDelete())
}
