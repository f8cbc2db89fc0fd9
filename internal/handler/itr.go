package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/model"
	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/validation"
)

const errITRNotFound = "ITR not found!"

// itrAction is the closed set of requests accepted by ManageITR.
type itrAction interface{ isITRAction() }

// addITR needs at least one document URL.
type addITR struct {
	CustomerID string   `json:"customer_id" validate:"required"`
	Year       string   `json:"year" validate:"required"`
	ITRURL     []string `json:"itr_url" validate:"required,min=1,dive,required"`
}

type editITR struct {
	ITRID  validation.Int `json:"itr_id" validate:"required"`
	Year   *string        `json:"year" validate:"omitempty,min=1"`
	ITRURL []string       `json:"itr_url" validate:"omitempty,dive,required"`
}

type deleteITR struct {
	ITRID validation.Int `json:"itr_id" validate:"required"`
}

type listITR struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

func (*addITR) isITRAction()    {}
func (*editITR) isITRAction()   {}
func (*deleteITR) isITRAction() {}
func (*listITR) isITRAction()   {}

var itrResource = dispatch.NewResource[itrAction]("itr",
	dispatch.Variant[itrAction]{Action: "add_itr", New: func() itrAction { return &addITR{} }},
	dispatch.Variant[itrAction]{Action: "edit_itr", New: func() itrAction { return &editITR{} }},
	dispatch.Variant[itrAction]{Action: "delete_itr", New: func() itrAction { return &deleteITR{} }},
	dispatch.Variant[itrAction]{Action: "get_itr_list", New: func() itrAction { return &listITR{} }},
)

// ManageITR serves /employee/manage-itr.
func (h *Handler) ManageITR(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, itrResource, func(ctx context.Context, _ auth.Claims, a itrAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *addITR:
			if err := h.itrs.Create(ctx, req.CustomerID, req.Year, model.StringList(req.ITRURL)); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("ITR added successfully.", nil), nil

		case *editITR:
			if _, err := h.itrs.ByID(ctx, req.ITRID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errITRNotFound)
			}
			patch := database.Row{"year": req.Year}
			if req.ITRURL != nil {
				patch["itr_url"] = model.StringList(req.ITRURL)
			}
			if err := h.itrs.Update(ctx, req.ITRID.Int64(), patch); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("ITR edited successfully.", nil), nil

		case *deleteITR:
			if _, err := h.itrs.ByID(ctx, req.ITRID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errITRNotFound)
			}
			if err := h.itrs.SoftDelete(ctx, req.ITRID.Int64()); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("ITR deleted successfully.", nil), nil

		case *listITR:
			list, err := h.itrs.ListByCustomer(ctx, req.CustomerID)
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("ITR list fetched successfully.", list), nil
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled itr action")
	})
}
