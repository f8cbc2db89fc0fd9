// Package response builds the transport responses returned by every
// endpoint: a status code, the CORS headers and a JSON body.
package response

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/errs"
)

// Envelope is the uniform body shape.
type Envelope struct {
	Status    bool   `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Headers returns the CORS headers attached to every response.
func Headers() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
	}
}

func statusCode(code int) int {
	if code < 100 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

// CodeOnly responds with headers and no body.
func CodeOnly(code int) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: statusCode(code), Headers: Headers()}
}

// SimpleMessage responds with {"message": msg}.
func SimpleMessage(code int, msg string) events.APIGatewayProxyResponse {
	return encode(code, map[string]string{"message": msg})
}

// JSONBody responds with body serialized as JSON. When code is exactly 400
// the body's message is rewritten by NormalizeMessage; no other code
// touches it.
func JSONBody(code int, body any) events.APIGatewayProxyResponse {
	if code == http.StatusBadRequest {
		body = normalizeBody(body)
	}
	return encode(code, body)
}

// OK is a 200 success envelope.
func OK(msg string, data any) events.APIGatewayProxyResponse {
	return JSONBody(http.StatusOK, Envelope{Status: true, Message: msg, Data: data})
}

// Fail is a 200 envelope with status=false, used for soft failures such as
// bad credentials.
func Fail(msg string) events.APIGatewayProxyResponse {
	return JSONBody(http.StatusOK, Envelope{Status: false, Message: msg})
}

// FromError converts any error into a failure envelope carrying the status
// the error asks for.
func FromError(err error) events.APIGatewayProxyResponse {
	return JSONBody(errs.StatusOf(err), Envelope{
		Status:    false,
		Message:   errs.MessageOf(err),
		ErrorCode: errs.CodeOf(err),
	})
}

// NormalizeMessage turns raw validator text into prose: underscores become
// spaces, double quotes are stripped and the first letter is capitalized.
func NormalizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "_", " ")
	msg = strings.ReplaceAll(msg, `"`, "")
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func normalizeBody(body any) any {
	switch b := body.(type) {
	case Envelope:
		b.Message = NormalizeMessage(b.Message)
		return b
	case *Envelope:
		if b == nil {
			return b
		}
		c := *b
		c.Message = NormalizeMessage(c.Message)
		return c
	case map[string]any:
		msg, _ := b["message"].(string)
		b["message"] = NormalizeMessage(msg)
		return b
	case map[string]string:
		b["message"] = NormalizeMessage(b["message"])
		return b
	}
	return body
}

func encode(code int, body any) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{StatusCode: statusCode(code), Headers: Headers()}
	raw, err := json.Marshal(body)
	if err != nil {
		resp.StatusCode = http.StatusInternalServerError
		raw, _ = json.Marshal(Envelope{Message: errs.ServerErrorTryAgain})
	}
	resp.Body = string(raw)
	return resp
}
