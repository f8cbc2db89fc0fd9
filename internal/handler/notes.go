package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/validation"
)

// Notes belong to the caller's company. The company is always taken from
// the credential, never from the request body.

const errNoteNotFound = "Note not found."

// noteAction is the closed set of requests accepted by ManageNotes.
type noteAction interface{ isNoteAction() }

type addNote struct {
	Title       string `json:"title" validate:"required"`
	NoteDate    string `json:"note_date" validate:"required"`
	ColorCode   string `json:"color_code" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// editNote carries optional fields; only the ones present are written.
type editNote struct {
	NoteID      validation.Int `json:"note_id" validate:"required"`
	Title       *string        `json:"title" validate:"omitempty,min=1"`
	NoteDate    *string        `json:"note_date" validate:"omitempty,min=1"`
	ColorCode   *string        `json:"color_code" validate:"omitempty,min=1"`
	Description *string        `json:"description" validate:"omitempty,min=1"`
}

type deleteNote struct {
	NoteID validation.Int `json:"note_id" validate:"required"`
}

type listNotes struct{}

func (*addNote) isNoteAction()    {}
func (*editNote) isNoteAction()   {}
func (*deleteNote) isNoteAction() {}
func (*listNotes) isNoteAction()  {}

var noteResource = dispatch.NewResource[noteAction]("notes",
	dispatch.Variant[noteAction]{Action: "add_note", New: func() noteAction { return &addNote{} }},
	dispatch.Variant[noteAction]{Action: "edit_note", New: func() noteAction { return &editNote{} }},
	dispatch.Variant[noteAction]{Action: "delete_note", New: func() noteAction { return &deleteNote{} }},
	dispatch.Variant[noteAction]{Action: "get_notes_list", New: func() noteAction { return &listNotes{} }},
)

// ManageNotes serves /notes/manage-notes.
func (h *Handler) ManageNotes(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, noteResource, func(ctx context.Context, c auth.Claims, a noteAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *addNote:
			err := h.notes.Create(ctx, database.Row{
				"_company_id": c.CompanyID,
				"title":       req.Title,
				"note_date":   req.NoteDate,
				"color_code":  req.ColorCode,
				"description": req.Description,
			})
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Note created successfully", nil), nil

		case *editNote:
			if _, err := h.notes.ByID(ctx, req.NoteID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errNoteNotFound)
			}
			err := h.notes.Update(ctx, req.NoteID.Int64(), database.Row{
				"title":       req.Title,
				"note_date":   req.NoteDate,
				"color_code":  req.ColorCode,
				"description": req.Description,
			})
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Note updated successfully", nil), nil

		case *deleteNote:
			if _, err := h.notes.ByID(ctx, req.NoteID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errNoteNotFound)
			}
			if err := h.notes.SoftDelete(ctx, req.NoteID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Note deleted successfully", nil), nil

		case *listNotes:
			notes, err := h.notes.ListByCompany(ctx, c.CompanyID)
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Notes list fetched successfully", map[string]any{"notesData": notes}), nil
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled notes action")
	})
}
