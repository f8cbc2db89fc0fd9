package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/notify"
	"github.com/iliyamo/docdesk/internal/repository"
	"github.com/iliyamo/docdesk/internal/response"
)

// Message endpoints carry no credential. Sender and receiver are employee or
// customer ids taken as given.

type addMessageRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	SenderID   string `json:"sender_id" validate:"required"`
	ReceiverID string `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

// AddMessage serves /message/add. The conversation between the pair is
// created on first use. The receiver is notified best-effort; a broker
// failure is logged and the message still counts as sent.
func (h *Handler) AddMessage(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "message_add", nil, func(ctx context.Context, _ auth.Claims, req *addMessageRequest) (events.APIGatewayProxyResponse, error) {
		id, err := h.messages.Conversation(ctx, req.EmployeeID, req.CustomerID)
		if errors.Is(err, repository.ErrNotFound) {
			id, err = h.messages.CreateConversation(ctx, req.EmployeeID, req.CustomerID)
		}
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		if err := h.messages.Add(ctx, id, req.SenderID, req.ReceiverID, req.Message); err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}

		notify.BestEffort(ctx, h.publisher, h.log, notify.NewEvent(notify.MessageSent, req.ReceiverID, map[string]string{
			"sender_id": req.SenderID,
			"message":   req.Message,
		}))
		return response.OK("Message sent successfully!", nil), nil
	})
}

type messageListRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
}

// MessageList serves /message/get-list.
func (h *Handler) MessageList(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "message_list", nil, func(ctx context.Context, _ auth.Claims, req *messageListRequest) (events.APIGatewayProxyResponse, error) {
		lines, err := h.messages.Lines(ctx, req.EmployeeID, req.CustomerID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK("Message fetched successfully", map[string]any{"messageData": lines}), nil
	})
}

type conversationListRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

// ConversationList serves /message/conversation/get-list.
func (h *Handler) ConversationList(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return single(ctx, h, ev, "conversation_list", nil, func(ctx context.Context, _ auth.Claims, req *conversationListRequest) (events.APIGatewayProxyResponse, error) {
		list, err := h.messages.Conversations(ctx, req.EmployeeID)
		if err != nil {
			return events.APIGatewayProxyResponse{}, internal(err)
		}
		return response.OK("Conversation fetched successfully", map[string]any{"messageData": list}), nil
	})
}
