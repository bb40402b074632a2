// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package support
//
// Player support tickets handled by the staff team.
package support

import "time"

// Ticket is one support request.
type Ticket struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status is the handling state of a ticket.
type Status string

// Ticket lifecycle states.
const (
	StatusOpen     Status = "open"
	StatusAnswered Status = "answered"
	StatusClosed   Status = "closed"
)

// Statuses returns every valid ticket status.
func Statuses() []string {
	return []string{string(StatusOpen), string(StatusAnswered), string(StatusClosed)}
}

// Field name constants for validation error details.
const (
	FieldSubject  = "subject"
	FieldBody     = "body"
	FieldStatus   = "status"
	FieldTicketID = "ticketId"
)

const (
	// SubjectMinLen keeps ticket subjects triageable.
	SubjectMinLen = 5
	// SubjectMaxLen bounds subjects for the staff queue layout.
	SubjectMaxLen = 120
	// BodyMinLen rejects empty ticket descriptions.
	BodyMinLen = 10
)
