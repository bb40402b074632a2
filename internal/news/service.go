// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package news

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

// Service implements announcement use cases. Every mutation is admin-gated.
type Service struct {
	repository Repository
	roles      gateway.RoleLookup
	views      gateway.ViewInvalidator
	sanitizer  *bluemonday.Policy
	policy     gateway.Policy
}

// NewService constructs a news [Service].
func NewService(repository Repository, roles gateway.RoleLookup, views gateway.ViewInvalidator) *Service {
	return &Service{
		repository: repository,
		roles:      roles,
		views:      views,
		sanitizer:  bluemonday.UGCPolicy(),
		policy:     gateway.RequireRole(sec.RoleAdmin),
	}
}

// # Reads

// Get returns one post by slug.
func (service *Service) Get(ctx context.Context, postSlug string) (*Post, error) {
	return service.repository.FindBySlug(ctx, postSlug)
}

// List returns a page of posts.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Post, int, error) {
	return service.repository.List(ctx, params)
}

// # Mutations

// PostInput holds the validated fields of a post create or update.
type PostInput struct {
	Title      string
	Body       string
	CoverImage string
}

// Create publishes a new announcement.
func (service *Service) Create(ctx context.Context, actor *sec.AuthClaims, input PostInput) (*Post, error) {
	if err := gateway.Authorize(ctx, service.policy, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	body, err := service.cleanBody(input.Body)
	if err != nil {
		return nil, err
	}

	postID := uuidv7.New()
	post := &Post{
		ID:             postID,
		Slug:           postSlug(input.Title, postID),
		Title:          strings.TrimSpace(input.Title),
		Body:           body,
		CoverImage:     input.CoverImage,
		AuthorID:       actor.UserID,
		AuthorNickname: actor.Nickname,
	}

	if err := service.repository.Create(ctx, post); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/noticias")

	return post, nil
}

// Update rewrites an announcement's content. The slug is stable: published
// links keep working after a retitle.
func (service *Service) Update(ctx context.Context, actor *sec.AuthClaims, postID string, input PostInput) (*Post, error) {
	if err := gateway.Authorize(ctx, service.policy, actor, service.roles, gateway.MsgForbidden); err != nil {
		return nil, err
	}

	body, err := service.cleanBody(input.Body)
	if err != nil {
		return nil, err
	}

	post, err := service.repository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Body = body
	post.CoverImage = input.CoverImage

	if err := service.repository.Update(ctx, post); err != nil {
		return nil, err
	}

	service.views.Invalidate(ctx, "/noticias", fmt.Sprintf("/noticias/%s", post.Slug))

	return post, nil
}

// Delete removes an announcement.
func (service *Service) Delete(ctx context.Context, actor *sec.AuthClaims, postID string) error {
	if err := gateway.Authorize(ctx, service.policy, actor, service.roles, gateway.MsgForbidden); err != nil {
		return err
	}

	post, err := service.repository.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(ctx, post.ID); err != nil {
		return err
	}

	service.views.Invalidate(ctx, "/noticias", fmt.Sprintf("/noticias/%s", post.Slug))

	return nil
}

// cleanBody sanitizes announcement markup and rejects bodies that sanitize
// down to nothing.
func (service *Service) cleanBody(raw string) (string, error) {
	body := strings.TrimSpace(service.sanitizer.Sanitize(raw))
	if len(body) < BodyMinLen {
		return "", apperr.ValidationError("Dados inválidos", apperr.FieldError{
			Field:   FieldBody,
			Message: "O conteúdo da notícia é muito curto",
		})
	}
	return body, nil
}

// postSlug derives a stable, unique URL slug from the headline plus a short
// id suffix.
func postSlug(title, id string) string {
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%s", slug.From(title), suffix)
}
