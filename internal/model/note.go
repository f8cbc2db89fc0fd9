package model

import "time"

// Note is a row of notes_master.
type Note struct {
	NoteID      int64     `db:"note_id" json:"note_id"`
	CompanyID   string    `db:"_company_id" json:"_company_id"`
	Title       string    `db:"title" json:"title"`
	NoteDate    string    `db:"note_date" json:"note_date"`
	ColorCode   string    `db:"color_code" json:"color_code"`
	Description string    `db:"description" json:"description"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
}

// NoteColumns lists the columns scanned into Note.
var NoteColumns = []string{"note_id", "_company_id", "title", "note_date", "color_code", "description", "date_created"}
