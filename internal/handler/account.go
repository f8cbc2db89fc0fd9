package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/utils"
	"github.com/iliyamo/docdesk/internal/validation"
)

const (
	msgEmailExists     = "Email id already exists!"
	msgRegistered      = "Registered successfully"
	msgBadCredentials  = "Invalid Email Id or Password"
	msgLoginSuccessful = "Login successfully!"
)

type registerEmployeeRequest struct {
	CompanyID    *string `json:"company_id" validate:"omitempty,min=1"`
	CompanyName  *string `json:"company_name" validate:"omitempty,min=1"`
	FirstName    string  `json:"first_name" validate:"required"`
	MiddleName   string  `json:"middle_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	MobileNumber string  `json:"mobile_number" validate:"required"`
	EmailID      string  `json:"email_id" validate:"required,email"`
	Gender       string  `json:"gender" validate:"required"`
}

// RegisterEmployee serves /employee/register. Without company_id the
// caller founds a new company and becomes its ADMIN.
func (h *Handler) RegisterEmployee(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "employee_register", nil, func(ctx context.Context, _ auth.Claims, req *registerEmployeeRequest) (events.APIGatewayProxyResponse, error) {
		email := strings.ToLower(req.EmailID)
		taken, err := h.employees.EmailTaken(ctx, email)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		if taken {
			return response.Fail(msgEmailExists), nil
		}

		companyID, role, companyName := h.newUUID(), auth.RoleAdmin, ""
		if req.CompanyID != nil {
			companyID, role = *req.CompanyID, auth.RoleEmployee
			if companyName, err = h.employees.CompanyName(ctx, companyID); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
		}
		if req.CompanyName != nil {
			companyName = *req.CompanyName
		}

		hash, err := utils.HashPassword(utils.DefaultPassword, h.bcryptCost)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		err = h.employees.Create(ctx, database.Row{
			"employee_id":   h.newUUID(),
			"company_id":    companyID,
			"company_name":  companyName,
			"first_name":    req.FirstName,
			"middle_name":   req.MiddleName,
			"last_name":     req.LastName,
			"mobile_number": req.MobileNumber,
			"email_id":      email,
			"user_name":     email,
			"password":      hash,
			"gender":        req.Gender,
			"role":          role,
		})
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}

		notify.BestEffort(ctx, h.publisher, h.log, notify.NewEvent(notify.EmployeeRegistered, email, map[string]string{
			"first_name":   req.FirstName,
			"company_name": companyName,
			"user_name":    email,
		}))
		return response.OK(msgRegistered, nil), nil
	})
}

type registerCustomerRequest struct {
	CompanyID    string         `json:"company_id" validate:"required"`
	CategoryID   validation.Int `json:"category_id" validate:"required"`
	FirstName    string         `json:"first_name" validate:"required"`
	MiddleName   string         `json:"middle_name" validate:"required"`
	LastName     string         `json:"last_name" validate:"required"`
	MobileNumber string         `json:"mobile_number" validate:"required"`
	EmailID      string         `json:"email_id" validate:"required,email"`
	Gender       string         `json:"gender" validate:"required"`
	UserImageURL *string        `json:"user_image_url" validate:"omitempty,min=1"`
	IsMarried    *bool          `json:"is_married"`
	DateOfBirth  string         `json:"date_of_birth" validate:"required"`
}

// RegisterCustomer serves /employee/customer-register. Email addresses
// are unique per company.
func (h *Handler) RegisterCustomer(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "customer_register", nil, func(ctx context.Context, _ auth.Claims, req *registerCustomerRequest) (events.APIGatewayProxyResponse, error) {
		email := strings.ToLower(req.EmailID)
		taken, err := h.customers.EmailTaken(ctx, email, req.CompanyID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		if taken {
			return response.Fail(msgEmailExists), nil
		}

		hash, err := utils.HashPassword(utils.DefaultPassword, h.bcryptCost)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		err = h.customers.Create(ctx, database.Row{
			"customer_uuid":  h.newUUID(),
			"_company_id":    req.CompanyID,
			"category_id":    req.CategoryID.Int64(),
			"first_name":     req.FirstName,
			"middle_name":    req.MiddleName,
			"last_name":      req.LastName,
			"mobile_number":  req.MobileNumber,
			"email_id":       email,
			"user_name":      email,
			"password":       hash,
			"gender":         req.Gender,
			"user_image_url": req.UserImageURL,
			"is_married":     req.IsMarried,
			"date_of_birth":  req.DateOfBirth,
		})
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}

		notify.BestEffort(ctx, h.publisher, h.log, notify.NewEvent(notify.CustomerRegistered, email, map[string]string{
			"first_name": req.FirstName,
			"user_name":  email,
		}))
		return response.OK(msgRegistered, nil), nil
	})
}

type loginRequest struct {
	UserName string `json:"user_name" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=50"`
}

type employeeIdentity struct {
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

// EmployeeLogin serves /employee/login. Unknown users and wrong passwords
// get the same soft failure.
func (h *Handler) EmployeeLogin(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "employee_login", nil, func(ctx context.Context, _ auth.Claims, req *loginRequest) (events.APIGatewayProxyResponse, error) {
		emp, err := h.employees.ByUserName(ctx, req.UserName)
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail(msgBadCredentials), nil
		}
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		if !utils.VerifyPassword(emp.Password, req.Password) {
			return response.Fail(msgBadCredentials), nil
		}
		if !emp.IsFirstLogin {
			if err := h.employees.Update(ctx, emp.EmployeeID, database.Row{"is_first_login": true}); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
		}

		token, err := h.signer.Employee(emp.EmployeeID, emp.CompanyID, emp.Role)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK(msgLoginSuccessful, map[string]any{
			"token":    token,
			"employee": employeeIdentity{CompanyID: emp.CompanyID, EmployeeID: emp.EmployeeID, Role: emp.Role},
		}), nil
	})
}

// CustomerLogin serves /customer/login.
func (h *Handler) CustomerLogin(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "customer_login", nil, func(ctx context.Context, _ auth.Claims, req *loginRequest) (events.APIGatewayProxyResponse, error) {
		cust, err := h.customers.ByUserName(ctx, req.UserName)
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail(msgBadCredentials), nil
		}
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		if !utils.VerifyPassword(cust.Password, req.Password) {
			return response.Fail(msgBadCredentials), nil
		}
		if !cust.IsFirstLogin {
			if err := h.customers.Update(ctx, cust.CustomerUUID, database.Row{"is_first_login": true}); err != nil {
				return events.APIGatewayProxyResponse{}, internal(err)
			}
		}

		token, err := h.signer.Customer(cust.CustomerUUID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK(msgLoginSuccessful, map[string]any{
			"token":    token,
			"customer": map[string]string{"id": cust.CustomerUUID},
		}), nil
	})
}
