// Package notify carries domain events from request handlers to the
// delivery worker over RabbitMQ.
package notify

import "time"

// Event types published by the handlers.
const (
	OTPIssued          = "otp.issued"
	EmployeeRegistered = "employee.registered"
	CustomerRegistered = "customer.registered"
	MessageSent        = "message.sent"
)

// Event is the JSON payload of one queue message. Data holds the values
// substituted into the event's template. otp.issued carries the plain code.
type Event struct {
	Type       string            `json:"type"`
	Recipient  string            `json:"recipient"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(typ, recipient string, data map[string]string) Event {
	return Event{
		Type:       typ,
		Recipient:  recipient,
		Data:       data,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
