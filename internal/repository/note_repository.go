package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

// Notes are company-wide sticky notes. Any employee of the company can read
// and edit every note; there is no owner column.
const notesTable = "notes_master"

// NoteRepo reads and writes notes_master rows.
type NoteRepo struct {
	store *database.Store // shared data access facade
}

// NewNoteRepo wires a NoteRepo to store.
func NewNoteRepo(store *database.Store) *NoteRepo { return &NoteRepo{store: store} }

// ByID loads a live note or returns ErrNotFound.
func (r *NoteRepo) ByID(ctx context.Context, id int64) (model.Note, error) {
	var n model.Note
	err := r.store.Get(ctx, &n, notesTable, model.NoteColumns, database.Where{"note_id": id, "is_deleted": live})
	return n, notFound(err, "get note")
}

// ListByCompany returns every live note of companyID, never nil.
func (r *NoteRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Note, error) {
	out := []model.Note{}
	err := r.store.Find(ctx, &out, notesTable, model.NoteColumns,
		database.Where{"_company_id": companyID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return out, nil
}

func (r *NoteRepo) Create(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, notesTable, row); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Update patches a live note. Only non-nil fields of patch are written.
func (r *NoteRepo) Update(ctx context.Context, id int64, patch database.Row) error {
	err := r.store.Update(ctx, notesTable, patch, database.Where{"note_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *NoteRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.Update(ctx, id, softDelete())
}
