package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docdesk/internal/response"
)

func echoBody(_ context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return response.OK(ev.RequestContext.ResourcePath, ev.Body)
}

func TestDispatchByResourcePath(t *testing.T) {
	fn := Dispatch([]Route{{Path: "/notes/manage-notes", Handler: echoBody}})

	res := fn(context.Background(), events.APIGatewayProxyRequest{
		Body:           "x",
		RequestContext: events.APIGatewayProxyRequestContext{ResourcePath: "/notes/manage-notes"},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":true,"message":"/notes/manage-notes","data":"x"}`, res.Body)

	res = fn(context.Background(), events.APIGatewayProxyRequest{Resource: "/notes/manage-notes"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDispatchUnknownPath(t *testing.T) {
	fn := Dispatch([]Route{{Path: "/notes/manage-notes", Handler: echoBody}})
	res := fn(context.Background(), events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{ResourcePath: "/nope"},
	})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.JSONEq(t, `{"message":"Something went wrong! Please try again later."}`, res.Body)
	assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])
}

func TestRegisterAppliesLimiterToLimitedRoutes(t *testing.T) {
	blocked := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return c.NoContent(http.StatusTooManyRequests) }
	}
	e := echo.New()
	Register(e, []Route{
		{Path: "/otp/send", Handler: echoBody, Limited: true},
		{Path: "/message/add", Handler: echoBody},
	}, blocked)

	testCases := []struct {
		path string
		want int
	}{
		{path: "/otp/send", want: http.StatusTooManyRequests},
		{path: "/message/add", want: http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{"a":1}`))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"status":true,"message":"/message/add","data":"{\"a\":1}"}`, rec.Body.String())
			}
		})
	}
}
