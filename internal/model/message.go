package model

import "time"

// Conversation pairs one employee with one customer.
type Conversation struct {
	ConversationID int64  `db:"conversation_id"`
	EmployeeID     string `db:"_employee_id"`
	CustomerID     string `db:"_customer_id"`
}

// ConversationSummary is a conversation with both participants' names.
type ConversationSummary struct {
	ConversationID     int64     `db:"conversation_id" json:"conversation_id"`
	EmployeeID         string    `db:"_employee_id" json:"_employee_id"`
	CustomerID         string    `db:"_customer_id" json:"_customer_id"`
	CustomerFirstName  *string   `db:"customer_first_name" json:"customer_first_name"`
	CustomerMiddleName *string   `db:"customer_middle_name" json:"customer_middle_name"`
	CustomerLastName   *string   `db:"customer_last_name" json:"customer_last_name"`
	CustomerImageURL   *string   `db:"customer_image_url" json:"customer_image_url"`
	EmployeeFirstName  *string   `db:"employee_first_name" json:"employee_first_name"`
	EmployeeMiddleName *string   `db:"employee_middle_name" json:"employee_middle_name"`
	EmployeeLastName   *string   `db:"employee_last_name" json:"employee_last_name"`
	DateCreated        time.Time `db:"date_created" json:"date_created"`
}

// MessageLine is one message of a conversation joined with the customer.
// Message columns are NULL for a conversation without messages.
type MessageLine struct {
	CustomerID     *int64     `db:"customer_id" json:"customer_id"`
	FirstName      *string    `db:"first_name" json:"first_name"`
	MiddleName     *string    `db:"middle_name" json:"middle_name"`
	LastName       *string    `db:"last_name" json:"last_name"`
	UserImageURL   *string    `db:"user_image_url" json:"user_image_url"`
	ConversationID int64      `db:"conversation_id" json:"conversation_id"`
	MessageID      *int64     `db:"message_id" json:"message_id"`
	SenderID       *string    `db:"_sender_id" json:"_sender_id"`
	ReceiverID     *string    `db:"_receiver_id" json:"_receiver_id"`
	Message        *string    `db:"message" json:"message"`
	DateCreated    *time.Time `db:"date_created" json:"date_created"`
}
