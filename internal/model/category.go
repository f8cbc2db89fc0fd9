package model

import "time"

// Category groups customers within a company.
type Category struct {
	CategoryID   int64     `db:"category_id" json:"category_id"`
	CategoryName string    `db:"category_name" json:"category_name"`
	CompanyID    string    `db:"_company_id" json:"-"`
	DateCreated  time.Time `db:"date_created" json:"-"`
}

// CategoryColumns lists the columns scanned into Category.
var CategoryColumns = []string{"category_id", "category_name", "_company_id", "date_created"}
