package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/response"
	"github.com/iliyamo/docdesk/internal/validation"
)

type sendOTPRequest struct {
	EmailID    string `json:"email_id" validate:"required,email"`
	ActionType string `json:"action_type" validate:"required"`
}

// SendOTP serves /otp/send. The body is the bare otp.Result.
func (h *Handler) SendOTP(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "otp_send", nil, func(ctx context.Context, _ auth.Claims, req *sendOTPRequest) (events.APIGatewayProxyResponse, error) {
		return response.JSONBody(http.StatusOK, h.otp.Issue(ctx, req.EmailID, req.ActionType)), nil
	})
}

type verifyOTPRequest struct {
	EmailID    string         `json:"email_id" validate:"required,email"`
	ActionType string         `json:"action_type" validate:"required"`
	OTPCode    validation.Int `json:"otp_code" validate:"required"`
}

// VerifyOTP serves /otp/verify.
func (h *Handler) VerifyOTP(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "otp_verify", nil, func(ctx context.Context, _ auth.Claims, req *verifyOTPRequest) (events.APIGatewayProxyResponse, error) {
		code := strconv.FormatInt(req.OTPCode.Int64(), 10)
		return response.JSONBody(http.StatusOK, h.otp.Verify(ctx, req.EmailID, req.ActionType, code)), nil
	})
}
