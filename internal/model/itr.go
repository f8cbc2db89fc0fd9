package model

import "time"

// ITR is an income tax return filing of a customer for one year.
type ITR struct {
	ITRID       int64      `db:"itr_id" json:"itr_id"`
	CustomerID  string     `db:"_customer_id" json:"-"`
	Year        string     `db:"year" json:"year"`
	ITRURL      StringList `db:"itr_url" json:"itr_url"`
	DateCreated time.Time  `db:"date_created" json:"date_created"`
}

// ITRColumns lists the columns scanned into ITR.
var ITRColumns = []string{"itr_id", "_customer_id", "year", "itr_url", "date_created"}
