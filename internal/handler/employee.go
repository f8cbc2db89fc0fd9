package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/response"
)

const errEmployeeNotFound = "Employee not found!"

// employeeAction is the closed set of requests accepted by ManageEmployee.
type employeeAction interface{ isEmployeeAction() }

type employeeByID struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

type getEmployee struct{ employeeByID }
type deleteEmployee struct{ employeeByID }
type listEmployees struct{}

type editEmployee struct {
	EmployeeID   string  `json:"employee_id" validate:"required"`
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	MiddleName   *string `json:"middle_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,min=1"`
	Gender       *string `json:"gender" validate:"omitempty,min=1"`
}

func (*getEmployee) isEmployeeAction()    {}
func (*listEmployees) isEmployeeAction()  {}
func (*editEmployee) isEmployeeAction()   {}
func (*deleteEmployee) isEmployeeAction() {}

var employeeResource = dispatch.NewResource[employeeAction]("employee",
	dispatch.Variant[employeeAction]{Action: "get_employee_details", New: func() employeeAction { return &getEmployee{} }},
	dispatch.Variant[employeeAction]{Action: "get_employee_list", New: func() employeeAction { return &listEmployees{} }},
	dispatch.Variant[employeeAction]{Action: "edit_employee", New: func() employeeAction { return &editEmployee{} }},
	dispatch.Variant[employeeAction]{Action: "delete_employee", New: func() employeeAction { return &deleteEmployee{} }},
)

// ManageEmployee serves /employee/manage-employee. Details of an unknown
// employee come back as an empty object; edit and delete report
// "Employee not found!" instead.
func (h *Handler) ManageEmployee(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, employeeResource, func(ctx context.Context, c auth.Claims, a employeeAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *getEmployee:
			emp, err := h.employees.ByID(ctx, req.EmployeeID)
			if errors.Is(err, repository.ErrNotFound) {
				return response.OK("Employee fetched successfully.", map[string]any{"employeeData": struct{}{}}), nil
			}
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Employee fetched successfully.", map[string]any{"employeeData": emp}), nil

		case *listEmployees:
			list, err := h.employees.ListByCompany(ctx, c.CompanyID)
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Employee fetched successfully.", map[string]any{"employeeData": list}), nil

		case *editEmployee:
			if _, err := h.employees.ByID(ctx, req.EmployeeID); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errEmployeeNotFound)
			}
			err := h.employees.Update(ctx, req.EmployeeID, database.Row{
				"first_name":    req.FirstName,
				"middle_name":   req.MiddleName,
				"last_name":     req.LastName,
				"mobile_number": req.MobileNumber,
				"gender":        req.Gender,
			})
			if err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Employee edited successfully.", nil), nil

		case *deleteEmployee:
			if _, err := h.employees.ByID(ctx, req.EmployeeID); err != nil {
				return events.APIGatewayProxyResponse{}, lookup(err, errEmployeeNotFound)
			}
			if err := h.employees.SoftDelete(ctx, req.EmployeeID); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
			return response.OK("Employee deleted successfully.", nil), nil
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled employee action")
	})
}

type employeeListRequest struct{}

// EmployeeList serves /employee/get-list: ids and names of the caller's
// company, for assignee pickers.
func (h *Handler) EmployeeList(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "employee_list", h.employeeAuth, func(ctx context.Context, c auth.Claims, _ *employeeListRequest) (events.APIGatewayProxyResponse, error) {
		list, err := h.employees.Summaries(ctx, c.CompanyID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK("Employee fetched successfully", map[string]any{"empData": list}), nil
	})
}
