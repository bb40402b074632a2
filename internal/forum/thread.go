// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package forum
//
// Community discussion threads with moderation reports and a "solved" flag
// for help topics.
package forum

import "time"

// Thread is one forum topic.
type Thread struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	AuthorID       string    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Solved         bool      `json:"solved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Report is one moderation report against a thread. Reports are append-only;
// handling them happens in the moderation queue, not here.
type Report struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// Field name constants for validation error details.
const (
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldReason = "reason"
	FieldSlug   = "slug"
)

const (
	// TitleMinLen keeps thread titles searchable.
	TitleMinLen = 5
	// TitleMaxLen bounds titles for listing layout.
	TitleMaxLen = 120
	// BodyMinLen rejects empty-after-sanitization posts.
	BodyMinLen = 10
	// ReasonMaxLen bounds report reasons.
	ReasonMaxLen = 500
)
