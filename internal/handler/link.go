package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/response"
)

type linkTokenRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

// GenerateLinkToken serves /employee/link-token/generate. The token binds
// the calling employee to one customer.
func (h *Handler) GenerateLinkToken(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "link_token", h.employeeAuth, func(ctx context.Context, c auth.Claims, req *linkTokenRequest) (events.APIGatewayProxyResponse, error) {
		token := h.newUUID()
		if err := h.links.Create(ctx, token, req.CustomerID, c.EmployeeID); err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK("Link token generated successfully", map[string]string{"link_token": token}), nil
	})
}

type employeeTokenRequest struct {
	LinkToken string `json:"link_token" validate:"required"`
}

// GenerateEmployeeToken serves /employee/employee-token/generate. It
// trades a link token for an employee credential and the linked customer.
func (h *Handler) GenerateEmployeeToken(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "employee_token", nil, func(ctx context.Context, _ auth.Claims, req *employeeTokenRequest) (events.APIGatewayProxyResponse, error) {
		link, err := h.links.Resolve(ctx, req.LinkToken)
		if err != nil {
			return events.APIGatewayProxyResponse{}, lookup(err, "Invalid Link Token")
		}
		customer, err := h.customerDetails(ctx, link.CustomerID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		var companyID, role string
		if link.CompanyID != nil {
			companyID = *link.CompanyID
		}
		if link.Role != nil {
			role = *link.Role
		}
		token, err := h.signer.Employee(link.EmployeeID, companyID, role)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK("Token generated successfully", map[string]any{
			"token":        token,
			"customerData": customer,
		}), nil
	})
}
