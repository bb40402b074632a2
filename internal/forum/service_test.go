// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package forum_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/forum"
	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/pagination"
)

// fakeRepository is an in-memory [forum.Repository].
type fakeRepository struct {
	threads      map[string]*forum.Thread // keyed by slug
	reports      []*forum.Report
	solvedWrites int
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*forum.Thread, error) {
	thread, ok := f.threads[slug]
	if !ok {
		return nil, apperr.NotFound("Tópico")
	}
	copied := *thread
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, _ pagination.Params) ([]forum.Thread, int, error) {
	all := make([]forum.Thread, 0, len(f.threads))
	for _, thread := range f.threads {
		all = append(all, *thread)
	}
	return all, len(all), nil
}

func (f *fakeRepository) Create(_ context.Context, thread *forum.Thread) error {
	f.threads[thread.Slug] = thread
	return nil
}

func (f *fakeRepository) MarkSolved(_ context.Context, threadID string) error {
	for _, thread := range f.threads {
		if thread.ID == threadID {
			thread.Solved = true
			f.solvedWrites++
			return nil
		}
	}
	return apperr.NotFound("Tópico")
}

func (f *fakeRepository) CreateReport(_ context.Context, report *forum.Report) error {
	f.reports = append(f.reports, report)
	return nil
}

// fakeRoles maps user ids to roles.
type fakeRoles map[string]sec.Role

func (f fakeRoles) RoleOf(_ context.Context, userID string) (sec.Role, error) {
	role, ok := f[userID]
	if !ok {
		return "", apperr.NotFound("Registro")
	}
	return role, nil
}

// fakeInvalidator records invalidated view paths.
type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, paths ...string) {
	f.paths = append(f.paths, paths...)
}

func newFixture() (*forum.Service, *fakeRepository, *fakeInvalidator) {
	repo := &fakeRepository{threads: map[string]*forum.Thread{
		"como-resetar-a-senha-0199aaaa": {
			ID:       "thread-1",
			Slug:     "como-resetar-a-senha-0199aaaa",
			Title:    "Como resetar a senha",
			AuthorID: "player-1",
		},
	}}
	roles := fakeRoles{"player-1": sec.RoleUser, "player-2": sec.RoleUser, "mod-1": sec.RoleMod}
	views := &fakeInvalidator{}
	return forum.NewService(repo, roles, views), repo, views
}

func claimsFor(userID, nickname string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Nickname: nickname}
}

/*
TestService_CreateThread_SanitizesBody verifies script tags are stripped
before the write while benign markup survives.
*/
func TestService_CreateThread_SanitizesBody(t *testing.T) {
	service, repo, views := newFixture()

	thread, err := service.CreateThread(context.Background(), claimsFor("player-1", "Steve"), forum.ThreadInput{
		Title: "Griefaram minha base",
		Body:  `<p>Encontrei minha base destruída</p><script>alert("xss")</script>`,
	})

	require.NoError(t, err)
	assert.NotContains(t, thread.Body, "<script>")
	assert.NotContains(t, thread.Body, "alert")
	assert.Contains(t, thread.Body, "<p>Encontrei minha base destruída</p>")
	assert.Contains(t, repo.threads, thread.Slug)
	assert.Equal(t, []string{"/forum"}, views.paths)
}

/*
TestService_CreateThread_SlugIsUniquePerThread verifies two threads with the
same title get distinct slugs.
*/
func TestService_CreateThread_SlugIsUniquePerThread(t *testing.T) {
	service, _, _ := newFixture()
	actor := claimsFor("player-1", "Steve")
	input := forum.ThreadInput{Title: "Dúvida sobre VIP", Body: "Qual a diferença entre os planos de VIP?"}

	first, err := service.CreateThread(context.Background(), actor, input)
	require.NoError(t, err)

	second, err := service.CreateThread(context.Background(), actor, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, first.Slug, "duvida-sobre-vip")
	assert.Contains(t, second.Slug, "duvida-sobre-vip")
}

/*
TestService_CreateThread_BodyEmptyAfterSanitization verifies a body that is
pure markup is rejected with a field error and no write.
*/
func TestService_CreateThread_BodyEmptyAfterSanitization(t *testing.T) {
	service, repo, _ := newFixture()

	_, err := service.CreateThread(context.Background(), claimsFor("player-1", "Steve"), forum.ThreadInput{
		Title: "Tópico suspeito",
		Body:  `<script>document.cookie</script>`,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "body", ae.Details[0].Field)
	assert.Len(t, repo.threads, 1)
}

/*
TestService_MarkSolved_AuthorSucceeds verifies the author can solve their
own thread and the thread's view is invalidated.
*/
func TestService_MarkSolved_AuthorSucceeds(t *testing.T) {
	service, repo, views := newFixture()

	thread, err := service.MarkSolved(context.Background(), claimsFor("player-1", "Steve"), "como-resetar-a-senha-0199aaaa")

	require.NoError(t, err)
	assert.True(t, thread.Solved)
	assert.Equal(t, 1, repo.solvedWrites)
	assert.Equal(t, []string{"/forum/como-resetar-a-senha-0199aaaa"}, views.paths)
}

/*
TestService_MarkSolved_AlreadySolvedIsNoOp verifies re-solving succeeds
without a second write or invalidation.
*/
func TestService_MarkSolved_AlreadySolvedIsNoOp(t *testing.T) {
	service, repo, views := newFixture()
	actor := claimsFor("player-1", "Steve")

	_, err := service.MarkSolved(context.Background(), actor, "como-resetar-a-senha-0199aaaa")
	require.NoError(t, err)

	thread, err := service.MarkSolved(context.Background(), actor, "como-resetar-a-senha-0199aaaa")
	require.NoError(t, err)

	assert.True(t, thread.Solved)
	assert.Equal(t, 1, repo.solvedWrites)
	assert.Len(t, views.paths, 1)
}

/*
TestService_MarkSolved_StrangerDenied verifies another player cannot solve
the thread, while a moderator can.
*/
func TestService_MarkSolved_StrangerDenied(t *testing.T) {
	service, repo, _ := newFixture()

	_, err := service.MarkSolved(context.Background(), claimsFor("player-2", "Alex"), "como-resetar-a-senha-0199aaaa")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
	assert.Equal(t, forum.MsgSolveDenied, ae.Message)
	assert.Zero(t, repo.solvedWrites)

	_, err = service.MarkSolved(context.Background(), claimsFor("mod-1", "Guardiao"), "como-resetar-a-senha-0199aaaa")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.solvedWrites)
}

/*
TestService_Report_AppendsWithoutInvalidation verifies a report is stored
against the thread and no view is touched.
*/
func TestService_Report_AppendsWithoutInvalidation(t *testing.T) {
	service, repo, views := newFixture()

	report, err := service.Report(context.Background(), claimsFor("player-2", "Alex"), "como-resetar-a-senha-0199aaaa", "Conteúdo ofensivo")

	require.NoError(t, err)
	assert.Equal(t, "thread-1", report.ThreadID)
	assert.Equal(t, "player-2", report.ReporterID)
	require.Len(t, repo.reports, 1)
	assert.Empty(t, views.paths)
}

/*
TestService_Mutations_RequireAuth verifies every forum mutation rejects
anonymous callers.
*/
func TestService_Mutations_RequireAuth(t *testing.T) {
	service, repo, _ := newFixture()

	_, err := service.CreateThread(context.Background(), nil, forum.ThreadInput{Title: "Título válido", Body: "Corpo suficientemente longo"})
	assert.Error(t, err)

	_, err = service.MarkSolved(context.Background(), nil, "como-resetar-a-senha-0199aaaa")
	assert.Error(t, err)

	_, err = service.Report(context.Background(), nil, "como-resetar-a-senha-0199aaaa", "motivo")
	assert.Error(t, err)

	assert.Len(t, repo.threads, 1)
	assert.Empty(t, repo.reports)
	assert.Zero(t, repo.solvedWrites)
}
