package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/storage"
)

// UploadURL serves /general/image/upload. Every body field is optional and
// a body that is not a JSON object falls back to the defaults.
func (h *Handler) UploadURL(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	start := time.Now()
	var req storage.Upload
	if err := json.Unmarshal([]byte(ev.Body), &req); err != nil {
		req = storage.Upload{}
	}

	var resp events.APIGatewayProxyResponse
	ticket, err := storage.Issue(ctx, h.presigner, req, h.now())
	if err != nil {
		resp = h.fail("upload", "", internal(err))
	} else {
		resp = response.JSONBody(http.StatusOK, ticket)
	}
	h.metrics.ObserveRequest("upload", "", resp.StatusCode, time.Since(start))
	return resp
}
