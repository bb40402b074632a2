// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package forum

import (
	"context"

	"github.com/minevale/api/pkg/pagination"
)

// Repository defines persistence operations for forum threads and reports.
type Repository interface {
	// FindBySlug returns one thread by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*Thread, error)

	// List returns a page of threads, newest first, plus the total count.
	List(ctx context.Context, params pagination.Params) ([]Thread, int, error)

	// Create persists a new thread.
	Create(ctx context.Context, thread *Thread) error

	// MarkSolved sets the solved flag on a thread.
	MarkSolved(ctx context.Context, threadID string) error

	// CreateReport appends a moderation report.
	CreateReport(ctx context.Context, report *Report) error
}
