// Package model holds the rows read from and written to the relational
// store. db tags name the columns; json tags shape API output. Password
// hashes never leave the process.
package model

import "time"

// Employee is a row of employee_master.
//
// Role is ADMIN for the employee that created the company and EMP for
// everyone registered into an existing company.
type Employee struct {
	EmployeeID   string    `db:"employee_id" json:"employee_id"`
	CompanyID    string    `db:"company_id" json:"company_id"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	FirstName    string    `db:"first_name" json:"first_name"`
	MiddleName   string    `db:"middle_name" json:"middle_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	MobileNumber string    `db:"mobile_number" json:"mobile_number"`
	UserName     string    `db:"user_name" json:"user_name"`
	EmailID      string    `db:"email_id" json:"email_id"`
	Password     string    `db:"password" json:"-"`
	Gender       string    `db:"gender" json:"gender"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsFirstLogin bool      `db:"is_first_login" json:"is_first_login"`
	DateCreated  time.Time `db:"date_created" json:"date_created"`
}

// EmployeeColumns lists the columns scanned into Employee.
var EmployeeColumns = []string{
	"employee_id", "company_id", "company_name", "first_name", "middle_name", "last_name",
	"mobile_number", "user_name", "email_id", "password", "gender", "role",
	"is_active", "is_first_login", "date_created",
}

// EmployeeSummary is the compact shape used by pickers.
type EmployeeSummary struct {
	EmployeeID string `db:"employee_id" json:"employee_id"`
	FirstName  string `db:"first_name" json:"first_name"`
	MiddleName string `db:"middle_name" json:"middle_name"`
	LastName   string `db:"last_name" json:"last_name"`
}

// PersonName is an optional display name. Empty parts are omitted, so a
// missing person renders as {}.
type PersonName struct {
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
}

// NameOf builds a PersonName from nullable join columns.
func NameOf(first, middle, last *string) PersonName {
	return PersonName{FirstName: deref(first), MiddleName: deref(middle), LastName: deref(last)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
