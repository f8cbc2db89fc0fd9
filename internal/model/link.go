package model

// LinkToken lets a customer-facing client act on behalf of the employee
// that generated it.
type LinkToken struct {
	LinkID     int64   `db:"link_id"`
	LinkToken  string  `db:"link_token"`
	CustomerID string  `db:"_customer_id"`
	EmployeeID string  `db:"_employee_id"`
	CompanyID  *string `db:"company_id"`
	Role       *string `db:"role"`
}
