// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package forum

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/gateway"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
	"github.com/minevale/api/pkg/slug"
	"github.com/minevale/api/pkg/uuidv7"
)

// MsgSolveDenied is the denial for marking someone else's thread solved.
const MsgSolveDenied = "Apenas o autor do tópico pode marcá-lo como resolvido."

// Service implements forum use cases.
type Service struct {
	repository Repository
	roles      gateway.RoleLookup
	views      gateway.ViewInvalidator
	sanitizer  *bluemonday.Policy
}

// NewService constructs a forum [Service]. Thread bodies pass through a
// UGC sanitizer, so player-authored markup can be rendered as-is.
func NewService(repository Repository, roles gateway.RoleLookup, views gateway.ViewInvalidator) *Service {
	return &Service{
		repository: repository,
		roles:      roles,
		views:      views,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// # Reads

// Get returns one thread by slug.
func (service *Service) Get(ctx context.Context, threadSlug string) (*Thread, error) {
	return service.repository.FindBySlug(ctx, threadSlug)
}

// List returns a page of threads.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Thread, int, error) {
	return service.repository.List(ctx, params)
}

// # Mutations

// ThreadInput holds the validated fields of a new thread.
type ThreadInput struct {
	Title string
	Body  string
}

// CreateThread opens a new topic authored by the caller.
//
// The body is sanitized before the write; a body that sanitizes down to
// nothing is rejected as if it were empty.
func (service *Service) CreateThread(ctx context.Context, actor *sec.AuthClaims, input ThreadInput) (*Thread, error) {
	if err := gateway.Authorize(ctx, gateway.AuthOnly(), actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(service.sanitizer.Sanitize(input.Body))
	if len(body) < BodyMinLen {
		return nil, apperr.ValidationError("Dados inválidos", apperr.FieldError{
			Field:   FieldBody,
			Message: "O conteúdo do tópico é muito curto",
		})
	}

	threadID := uuidv7.New()
	thread := &Thread{
		ID:             threadID,
		Slug:           threadSlug(input.Title, threadID),
		Title:          strings.TrimSpace(input.Title),
		Body:           body,
		AuthorID:       actor.UserID,
		AuthorNickname: actor.Nickname,
	}

	if err := service.repository.Create(ctx, thread); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/forum")

	return thread, nil
}

// MarkSolved flags a thread as resolved.
//
// Only the author (or staff) may do it. Re-solving an already-solved thread
// succeeds without a store write, so double submissions are harmless.
func (service *Service) MarkSolved(ctx context.Context, actor *sec.AuthClaims, threadSlug string) (*Thread, error) {
	if err := gateway.Authorize(ctx, gateway.AuthOnly(), actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	thread, err := service.repository.FindBySlug(ctx, threadSlug)
	if err != nil {
		return nil, err
	}

	if thread.AuthorID != actor.UserID {
		if err := gateway.Authorize(ctx, gateway.RequireRole(sec.RoleMod), actor, service.roles, MsgSolveDenied); err != nil {
			return nil, err
		}
	}

	if thread.Solved {
		return thread, nil
	}

	if err := service.repository.MarkSolved(ctx, thread.ID); err != nil {
		return nil, err
	}
	thread.Solved = true

	service.views.Invalidate(ctx, fmt.Sprintf("/forum/%s", thread.Slug))

	return thread, nil
}

// Report files a moderation report against a thread. Reports never touch
// the thread itself and invalidate no views.
func (service *Service) Report(ctx context.Context, actor *sec.AuthClaims, threadSlug, reason string) (*Report, error) {
	if err := gateway.Authorize(ctx, gateway.AuthOnly(), actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	thread, err := service.repository.FindBySlug(ctx, threadSlug)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:         uuidv7.New(),
		ThreadID:   thread.ID,
		ReporterID: actor.UserID,
		Reason:     strings.TrimSpace(reason),
	}

	if err := service.repository.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// threadSlug derives a stable, unique URL slug from the title plus a short
// id suffix, so identical titles never collide.
func threadSlug(title, id string) string {
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%s", slug.From(title), suffix)
}
