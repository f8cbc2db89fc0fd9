// Package router owns the route table shared by the Lambda and HTTP entry
// points.
package router

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docdesk/internal/errs"
	"github.com/iliyamo/docdesk/internal/handler"
	"github.com/iliyamo/docdesk/internal/middleware"
	"github.com/iliyamo/docdesk/internal/response"
)

// Route binds a resource path to its handler. Limited routes sit behind
// the rate limiter when served over HTTP.
type Route struct {
	Path    string
	Handler handler.Func
	Limited bool
}

// Routes lists every endpoint.
func Routes(h *handler.Handler) []Route {
	return []Route{
		{Path: "/category/manage-category", Handler: h.ManageCategory},
		{Path: "/task/manage-task", Handler: h.ManageTask},
		{Path: "/notes/manage-notes", Handler: h.ManageNotes},
		{Path: "/employee/manage-itr", Handler: h.ManageITR},
		{Path: "/employee/manage-customer", Handler: h.ManageCustomer},
		{Path: "/employee/manage-employee", Handler: h.ManageEmployee},
		{Path: "/employee/get-list", Handler: h.EmployeeList},

		{Path: "/employee/register", Handler: h.RegisterEmployee, Limited: true},
		{Path: "/employee/login", Handler: h.EmployeeLogin, Limited: true},
		{Path: "/employee/customer-register", Handler: h.RegisterCustomer, Limited: true},
		{Path: "/customer/login", Handler: h.CustomerLogin, Limited: true},
		{Path: "/employee/link-token/generate", Handler: h.GenerateLinkToken},
		{Path: "/employee/employee-token/generate", Handler: h.GenerateEmployeeToken, Limited: true},

		{Path: "/message/add", Handler: h.AddMessage},
		{Path: "/message/get-list", Handler: h.MessageList},
		{Path: "/message/conversation/get-list", Handler: h.ConversationList},

		{Path: "/general/image/upload", Handler: h.UploadURL},
		{Path: "/otp/send", Handler: h.SendOTP, Limited: true},
		{Path: "/otp/verify", Handler: h.VerifyOTP, Limited: true},
	}
}

// Dispatch routes Lambda events by resource path. An unknown path is a
// server error, as API Gateway only forwards configured resources.
func Dispatch(routes []Route) handler.Func {
	table := make(map[string]handler.Func, len(routes))
	for _, r := range routes {
		table[r.Path] = r.Handler
	}
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
		path := ev.RequestContext.ResourcePath
		if path == "" {
			path = ev.Resource
		}
		fn, ok := table[path]
		if !ok {
			return response.SimpleMessage(http.StatusInternalServerError, errs.ServerErrorTryAgain)
		}
		return fn(ctx, ev)
	}
}

// Register mounts every route as POST on e. limiter may be nil.
func Register(e *echo.Echo, routes []Route, limiter echo.MiddlewareFunc) {
	for _, r := range routes {
		var mw []echo.MiddlewareFunc
		if r.Limited && limiter != nil {
			mw = append(mw, limiter)
		}
		e.POST(r.Path, adapt(r), mw...)
	}
}

func adapt(r Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		ev, err := middleware.ToEvent(c, r.Path)
		if err != nil {
			return middleware.WriteResponse(c, response.SimpleMessage(http.StatusBadRequest, "Invalid request body"))
		}
		return middleware.WriteResponse(c, r.Handler(c.Request().Context(), ev))
	}
}
