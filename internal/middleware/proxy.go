package middleware

import (
	"io"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/docdesk/internal/auth"
)

// UserIDKey is the echo context key Identify stores the caller under.
const UserIDKey = "user_id"

// ToEvent turns an HTTP request into the API Gateway event the handlers
// consume. resourcePath is the route the request matched.
func ToEvent(c echo.Context, resourcePath string) (events.APIGatewayProxyRequest, error) {
	req := c.Request()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	headers := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		headers[k] = strings.Join(v, ",")
	}
	// Handlers read "Authorization" regardless of the client's casing.
	if authz := req.Header.Get(echo.HeaderAuthorization); authz != "" {
		headers[echo.HeaderAuthorization] = authz
	}
	return events.APIGatewayProxyRequest{
		Resource:   resourcePath,
		Path:       req.URL.Path,
		HTTPMethod: req.Method,
		Headers:    headers,
		Body:       string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			ResourcePath: resourcePath,
			HTTPMethod:   req.Method,
			Identity:     events.APIGatewayRequestIdentity{SourceIP: c.RealIP()},
		},
	}, nil
}

// WriteResponse copies a handler response onto the HTTP response.
func WriteResponse(c echo.Context, res events.APIGatewayProxyResponse) error {
	h := c.Response().Header()
	for k, v := range res.Headers {
		h.Set(k, v)
	}
	if res.Body == "" {
		return c.NoContent(res.StatusCode)
	}
	return c.Blob(res.StatusCode, echo.MIMEApplicationJSONCharsetUTF8, []byte(res.Body))
}

// Identify reads the bearer credential, when there is a valid one, and
// stores the caller's id under UserIDKey for rate limiting and request logs.
// It never rejects: the handlers own authentication.
func Identify(verifiers ...*auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			for _, v := range verifiers {
				if claims, err := v.Verify(header); err == nil {
					c.Set(UserIDKey, claims.Subject())
					break
				}
			}
			return next(c)
		}
	}
}
