package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const (
	conversationsTable = "conversations_master"
	messagesTable      = "messages_master"
)

// MessageRepo covers conversations and their messages. A conversation pairs
// one employee with one customer and is created the first time either side
// writes; messages reference it by conversation_id.
type MessageRepo struct {
	store *database.Store // shared data access facade
}

// NewMessageRepo wires a MessageRepo to store.
func NewMessageRepo(store *database.Store) *MessageRepo { return &MessageRepo{store: store} }

// Conversation returns the id of the live conversation between the pair.
func (r *MessageRepo) Conversation(ctx context.Context, employeeID, customerID string) (int64, error) {
	var c model.Conversation
	err := r.store.Get(ctx, &c, conversationsTable,
		[]string{"conversation_id", "_employee_id", "_customer_id"},
		database.Where{"_employee_id": employeeID, "_customer_id": customerID, "is_deleted": live})
	if err != nil {
		return 0, notFound(err, "get conversation")
	}
	return c.ConversationID, nil
}

// CreateConversation opens a conversation and returns its generated id.
func (r *MessageRepo) CreateConversation(ctx context.Context, employeeID, customerID string) (int64, error) {
	id, err := r.store.InsertReturning(ctx, conversationsTable,
		database.Row{"_employee_id": employeeID, "_customer_id": customerID}, "conversation_id")
	if err != nil {
		return 0, fmt.Errorf("create conversation: %w", err)
	}
	return id, nil
}

// Add appends a message to conversationID.
func (r *MessageRepo) Add(ctx context.Context, conversationID int64, senderID, receiverID, message string) error {
	err := r.store.Insert(ctx, messagesTable, database.Row{
		"_conversation_id": conversationID,
		"_sender_id":       senderID,
		"_receiver_id":     receiverID,
		"message":          message,
	})
	if err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

// Lines returns the messages between the pair, newest first.
func (r *MessageRepo) Lines(ctx context.Context, employeeID, customerID string) ([]model.MessageLine, error) {
	out := []model.MessageLine{}
	err := r.store.Select(ctx, &out, `SELECT cu.customer_id, cu.first_name, cu.middle_name, cu.last_name, cu.user_image_url,
	c.conversation_id, m.message_id, m._sender_id, m._receiver_id, m.message, m.date_created
FROM conversations_master c
LEFT JOIN customer_master cu ON cu.customer_uuid = c._customer_id AND cu.is_deleted = 0
LEFT JOIN messages_master m ON m._conversation_id = c.conversation_id AND m.is_deleted = 0
WHERE c._employee_id = ? AND c._customer_id = ? AND c.is_deleted = 0
ORDER BY m.date_created DESC`, employeeID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

// Conversations lists the employee's conversations, newest first.
func (r *MessageRepo) Conversations(ctx context.Context, employeeID string) ([]model.ConversationSummary, error) {
	out := []model.ConversationSummary{}
	err := r.store.Select(ctx, &out, `SELECT c.conversation_id, c._employee_id, c._customer_id,
	cu.first_name AS customer_first_name, cu.middle_name AS customer_middle_name,
	cu.last_name AS customer_last_name, cu.user_image_url AS customer_image_url,
	e.first_name AS employee_first_name, e.middle_name AS employee_middle_name,
	e.last_name AS employee_last_name, c.date_created
FROM conversations_master c
LEFT JOIN customer_master cu ON cu.customer_uuid = c._customer_id AND cu.is_deleted = 0
LEFT JOIN employee_master e ON e.employee_id = c._employee_id AND e.is_deleted = 0
WHERE c._employee_id = ? AND c.is_deleted = 0
ORDER BY c.date_created DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return out, nil
}
