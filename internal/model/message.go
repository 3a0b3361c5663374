package model

import "time"

// Message kinds stored in contact_messages.kind.
const (
	MessageContact = "contact"
	MessageProblem = "problem"
)

// ContactMessage is a submission from the contact or
// report-a-problem form, stored in the `contact_messages` table.
// Messages are write-only from the API; staff read them out of
// band.
type ContactMessage struct {
	ID        uint64    // contact_messages.id
	Kind      string    // contact_messages.kind
	Name      string    // contact_messages.name
	Email     string    // contact_messages.email
	Subject   string    // contact_messages.subject
	Body      string    // contact_messages.body
	CreatedAt time.Time // contact_messages.created_at
}
