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

// Category endpoints. Every action is scoped to the company in the caller's
// credential: a category of another company reads as not found.

const errCategoryNotFound = "Category not found!"

// categoryAction is the closed set of requests accepted by ManageCategory.
type categoryAction interface{ isCategoryAction() }

type addCategory struct {
	CategoryName string `json:"category_name" validate:"required"`
}

// editCategory renames a category. An absent name is a no-op update.
type editCategory struct {
	CategoryID   validation.Int `json:"category_id" validate:"required"`
	CategoryName *string        `json:"category_name" validate:"omitempty,min=1"`
}

type deleteCategory struct {
	CategoryID validation.Int `json:"category_id" validate:"required"`
}

type listCategories struct{}

func (*addCategory) isCategoryAction()    {}
func (*editCategory) isCategoryAction()   {}
func (*deleteCategory) isCategoryAction() {}
func (*listCategories) isCategoryAction() {}

var categoryResource = dispatch.NewResource[categoryAction]("category",
	dispatch.Variant[categoryAction]{Action: "add_category", New: func() categoryAction { return &addCategory{} }},
	dispatch.Variant[categoryAction]{Action: "edit_category", New: func() categoryAction { return &editCategory{} }},
	dispatch.Variant[categoryAction]{Action: "delete_category", New: func() categoryAction { return &deleteCategory{} }},
	dispatch.Variant[categoryAction]{Action: "get_category_list", New: func() categoryAction { return &listCategories{} }},
)

// ManageCategory serves /category/manage-category. The employee credential
// is checked first, then the action, then the action's fields.
func (h *Handler) ManageCategory(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, categoryResource, func(ctx context.Context, c auth.Claims, a categoryAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *addCategory:
			return h.addCategory(ctx, c, req)
		case *editCategory:
			return h.editCategory(ctx, c, req)
		case *deleteCategory:
			return h.deleteCategory(ctx, c, req)
		case *listCategories:
			return h.listCategories(ctx, c)
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled category action")
	})
}

func (h *Handler) addCategory(ctx context.Context, c auth.Claims, req *addCategory) (events.APIGatewayProxyResponse, error) {
	taken, err := h.categories.NameTaken(ctx, c.CompanyID, req.CategoryName)
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	if taken {
		return events.APIGatewayProxyResponse{}, errors.New("Category already exists!")
	}
	if err := h.categories.Create(ctx, c.CompanyID, req.CategoryName); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Category added successfully.", nil), nil
}

// ownCategory loads a category of the caller's company.
func (h *Handler) ownCategory(ctx context.Context, c auth.Claims, id int64) error {
	cat, err := h.categories.ByID(ctx, id)
	if err != nil {
		return lookup(err, errCategoryNotFound)
	}
	if cat.CompanyID != c.CompanyID {
		return errors.New(errCategoryNotFound)
	}
	return nil
}

func (h *Handler) editCategory(ctx context.Context, c auth.Claims, req *editCategory) (events.APIGatewayProxyResponse, error) {
	if err := h.ownCategory(ctx, c, req.CategoryID.Int64()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	err := h.categories.Update(ctx, req.CategoryID.Int64(), database.Row{"category_name": req.CategoryName})
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Category edited successfully.", nil), nil
}

func (h *Handler) deleteCategory(ctx context.Context, c auth.Claims, req *deleteCategory) (events.APIGatewayProxyResponse, error) {
	if err := h.ownCategory(ctx, c, req.CategoryID.Int64()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := h.categories.SoftDelete(ctx, req.CategoryID.Int64()); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Category deleted successfully.", nil), nil
}

func (h *Handler) listCategories(ctx context.Context, c auth.Claims) (events.APIGatewayProxyResponse, error) {
	list, err := h.categories.ListByCompany(ctx, c.CompanyID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Category fetched successfully.", map[string]any{"categoryData": list}), nil
}
