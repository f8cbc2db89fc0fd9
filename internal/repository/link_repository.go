package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const linkTable = "link_token_master"

// LinkRepo stores the one-off link tokens an employee shares with a
// customer. A token is exchanged for an employee credential by the
// employee-token endpoint.
type LinkRepo struct {
	store *database.Store // shared data access facade
}

// NewLinkRepo wires a LinkRepo to store.
func NewLinkRepo(store *database.Store) *LinkRepo { return &LinkRepo{store: store} }

// Create stores token for the customer and employee pair.
func (r *LinkRepo) Create(ctx context.Context, token, customerID, employeeID string) error {
	err := r.store.Insert(ctx, linkTable, database.Row{
		"link_token":   token,
		"_customer_id": customerID,
		"_employee_id": employeeID,
	})
	if err != nil {
		return fmt.Errorf("create link token: %w", err)
	}
	return nil
}

// Resolve loads a live link token together with the company and role of
// the employee that generated it.
func (r *LinkRepo) Resolve(ctx context.Context, token string) (model.LinkToken, error) {
	var rows []model.LinkToken
	err := r.store.Select(ctx, &rows, `SELECT l.link_id, l.link_token, l._customer_id, l._employee_id,
	e.company_id, e.role
FROM link_token_master l
LEFT JOIN employee_master e ON e.employee_id = l._employee_id AND e.is_deleted = 0
WHERE l.link_token = ? AND l.is_deleted = 0
LIMIT 1`, token)
	if err != nil {
		return model.LinkToken{}, fmt.Errorf("resolve link token: %w", err)
	}
	if len(rows) == 0 {
		return model.LinkToken{}, ErrNotFound
	}
	return rows[0], nil
}
