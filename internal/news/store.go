// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package news

import (
	"context"

	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for news posts.
type Repository interface {
	// FindBySlug returns one post by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// FindByID returns one post by id.
	FindByID(ctx context.Context, postID string) (*Post, error)

	// List returns a page of posts, newest first, plus the total count.
	List(ctx context.Context, params pagination.Params) ([]Post, int, error)

	// Create persists a new post.
	Create(ctx context.Context, post *Post) error

	// Update persists changes to an existing post.
	Update(ctx context.Context, post *Post) error

	// Delete removes a post by id.
	Delete(ctx context.Context, postID string) error
}
