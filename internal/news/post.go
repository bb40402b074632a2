// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// # Package news
//
// Server announcements published on the site's home and news pages.
package news

import "time"

// Post is one published announcement.
type Post struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CoverImage     string    `json:"cover_image"`
	AuthorID       string    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Field name constants for validation error details.
const (
	FieldTitle      = "title"
	FieldBody       = "body"
	FieldCoverImage = "coverImage"
	FieldPostID     = "postId"
)

const (
	// TitleMinLen keeps headlines meaningful.
	TitleMinLen = 5
	// TitleMaxLen bounds headlines for card layout.
	TitleMaxLen = 120
	// BodyMinLen rejects empty-after-sanitization announcements.
	BodyMinLen = 10
)
