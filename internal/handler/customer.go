package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/model"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/response"
)

const errCustomerNotFound = "Customer not found!"

type customerAction interface{ isCustomerAction() }

// editCustomer patches the profile and upserts the documents row. Document
// fields accept "" to clear a value.
type editCustomer struct {
	CustomerID   string  `json:"customer_id" validate:"required"`
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	MiddleName   *string `json:"middle_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,min=1"`
	Gender       *string `json:"gender" validate:"omitempty,min=1"`
	UserImageURL *string `json:"user_image_url"`
	IsMarried    *bool   `json:"is_married"`
	DateOfBirth  *string `json:"date_of_birth" validate:"omitempty,min=1"`

	AadharNumber          *string  `json:"aadhar_number"`
	AadharFrontURL        *string  `json:"aadhar_front_url"`
	AadharBackURL         *string  `json:"aadhar_back_url"`
	PancardNumber         *string  `json:"pancard_number"`
	PancardURL            *string  `json:"pancard_url"`
	PassportNumber        *string  `json:"passport_number"`
	PassportURL           *string  `json:"passport_url"`
	PassportExpiryDate    *string  `json:"passport_expiry_date"`
	VotingURL             *string  `json:"voting_url"`
	BirthCertificateURL   *string  `json:"birth_certificate_url"`
	LeavingCertificateURL *string  `json:"leaving_certificate_url"`
	CasteCertificateURL   *string  `json:"caste_certificate_url"`
	DrivingNumber         *string  `json:"driving_number"`
	DrivingURL            *string  `json:"driving_url"`
	LightBillURLs         []string `json:"light_bill_urls" validate:"omitempty,dive,required"`
}

type customerByID struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

type getCustomer struct{ customerByID }
type deleteCustomer struct{ customerByID }
type listCustomers struct{}

func (*editCustomer) isCustomerAction()   {}
func (*getCustomer) isCustomerAction()    {}
func (*deleteCustomer) isCustomerAction() {}
func (*listCustomers) isCustomerAction()  {}

var customerResource = dispatch.NewResource[customerAction]("customer",
	dispatch.Variant[customerAction]{Action: "edit_customer", New: func() customerAction { return &editCustomer{} }},
	dispatch.Variant[customerAction]{Action: "get_customer_details", New: func() customerAction { return &getCustomer{} }},
	dispatch.Variant[customerAction]{Action: "get_customer_list", New: func() customerAction { return &listCustomers{} }},
	dispatch.Variant[customerAction]{Action: "delete_customer", New: func() customerAction { return &deleteCustomer{} }},
)

// ManageCustomer serves /employee/manage-customer.
func (h *Handler) ManageCustomer(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, customerResource, func(ctx context.Context, c auth.Claims, a customerAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *editCustomer:
			return h.editCustomer(ctx, req)
		case *getCustomer:
			details, err := h.customerDetails(ctx, req.CustomerID)
			if err != nil {
				return events.APIGatewayProxyResponse{}, err
			}
			return response.OK("Customer fetched successfully.", map[string]any{"customerData": details}), nil
		case *listCustomers:
			return h.listCustomers(ctx, c)
		case *deleteCustomer:
			return h.deleteCustomer(ctx, req)
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled customer action")
	})
}

func (h *Handler) editCustomer(ctx context.Context, req *editCustomer) (events.APIGatewayProxyResponse, error) {
	var hasDocuments bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := h.customers.ByUUID(gctx, req.CustomerID)
		return err
	})
	g.Go(func() error {
		_, err := h.customers.Documents(gctx, req.CustomerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		hasDocuments = err == nil
		return err
	})
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, lookup(err, errCustomerNotFound)
	}

	profile := database.Row{
		"first_name":     req.FirstName,
		"middle_name":    req.MiddleName,
		"last_name":      req.LastName,
		"mobile_number":  req.MobileNumber,
		"gender":         req.Gender,
		"user_image_url": req.UserImageURL,
		"is_married":     req.IsMarried,
		"date_of_birth":  req.DateOfBirth,
	}
	docs := database.Row{
		"aadhar_number":           req.AadharNumber,
		"aadhar_front_url":        req.AadharFrontURL,
		"aadhar_back_url":         req.AadharBackURL,
		"pancard_number":          req.PancardNumber,
		"pancard_url":             req.PancardURL,
		"passport_number":         req.PassportNumber,
		"passport_url":            req.PassportURL,
		"passport_expiry_date":    req.PassportExpiryDate,
		"voting_url":              req.VotingURL,
		"birth_certificate_url":   req.BirthCertificateURL,
		"leaving_certificate_url": req.LeavingCertificateURL,
		"caste_certificate_url":   req.CasteCertificateURL,
		"driving_number":          req.DrivingNumber,
		"driving_url":             req.DrivingURL,
	}
	if req.LightBillURLs != nil {
		docs["light_bill_urls"] = model.StringList(req.LightBillURLs)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return h.customers.Update(gctx, req.CustomerID, profile) })
	if hasDocuments {
		g.Go(func() error { return h.customers.UpdateDocuments(gctx, req.CustomerID, docs) })
	} else {
		docs["_customer_id"] = req.CustomerID
		if req.LightBillURLs == nil {
			docs["light_bill_urls"] = model.StringList{}
		}
		g.Go(func() error { return h.customers.CreateDocuments(gctx, docs) })
	}
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Customer edited successfully.", nil), nil
}

// customerDetails returns the customer with its documents nested, or an
// empty object when there is no such customer.
func (h *Handler) customerDetails(ctx context.Context, uuid string) (any, error) {
	var (
		customer model.Customer
		docs     *model.Documents
		missing  bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customer, err = h.customers.ByUUID(gctx, uuid)
		if errors.Is(err, repository.ErrNotFound) {
			missing = true
			return nil
		}
		return err
	})
	g.Go(func() error {
		d, err := h.customers.Documents(gctx, uuid)
		switch {
		case err == nil:
			docs = &d
		case errors.Is(err, repository.ErrNotFound):
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internal(err)
	}
	if missing {
		return struct{}{}, nil
	}
	return model.WithDocuments(customer, docs), nil
}

func (h *Handler) listCustomers(ctx context.Context, c auth.Claims) (events.APIGatewayProxyResponse, error) {
	customers, err := h.customers.ListByCompany(ctx, c.CompanyID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	uuids := make([]string, len(customers))
	for i, cu := range customers {
		uuids[i] = cu.CustomerUUID
	}
	docs, err := h.customers.DocumentsOf(ctx, uuids)
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}

	out := make([]model.CustomerDetails, len(customers))
	for i, cu := range customers {
		var d *model.Documents
		if found, ok := docs[cu.CustomerUUID]; ok {
			d = &found
		}
		out[i] = model.WithDocuments(cu, d)
	}
	return response.OK("Customer fetched successfully.", map[string]any{"customerData": out}), nil
}

func (h *Handler) deleteCustomer(ctx context.Context, req *deleteCustomer) (events.APIGatewayProxyResponse, error) {
	if _, err := h.customers.ByUUID(ctx, req.CustomerID); err != nil {
		return events.APIGatewayProxyResponse{}, lookup(err, errCustomerNotFound)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.customers.SoftDelete(gctx, req.CustomerID) })
	g.Go(func() error { return h.customers.SoftDeleteDocuments(gctx, req.CustomerID) })
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Customer deleted successfully.", nil), nil
}
