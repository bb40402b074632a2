// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package support_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/internal/support"
	"github.com/minevale/api/pkg/pagination"
)

// fakeRepository is an in-memory [support.Repository].
type fakeRepository struct {
	tickets map[string]*support.Ticket
	writes  int
}

func (f *fakeRepository) FindByID(_ context.Context, ticketID string) (*support.Ticket, error) {
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, apperr.NotFound("Chamado")
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, _ pagination.Params) ([]support.Ticket, int, error) {
	all := make([]support.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		all = append(all, *ticket)
	}
	return all, len(all), nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]support.Ticket, int, error) {
	own := make([]support.Ticket, 0)
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			own = append(own, *ticket)
		}
	}
	return own, len(own), nil
}

func (f *fakeRepository) Create(_ context.Context, ticket *support.Ticket) error {
	f.tickets[ticket.ID] = ticket
	f.writes++
	return nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, ticketID string, status support.Status) error {
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return apperr.NotFound("Chamado")
	}
	ticket.Status = status
	f.writes++
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

func newFixture() (*support.Service, *fakeRepository) {
	repo := &fakeRepository{tickets: map[string]*support.Ticket{
		"ticket-1": {ID: "ticket-1", UserID: "player-1", Subject: "Perdi meus itens", Status: support.StatusOpen},
		"ticket-2": {ID: "ticket-2", UserID: "player-2", Subject: "VIP não ativou", Status: support.StatusOpen},
	}}
	roles := fakeRoles{"mod-1": sec.RoleMod, "admin-1": sec.RoleAdmin, "player-1": sec.RoleUser, "player-2": sec.RoleUser}
	return support.NewService(repo, roles), repo
}

func claimsFor(userID string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Nickname: "n"}
}

/*
TestService_Open_CreatesOpenTicket verifies a new ticket starts in the open
state and belongs to the caller.
*/
func TestService_Open_CreatesOpenTicket(t *testing.T) {
	service, repo := newFixture()

	ticket, err := service.Open(context.Background(), claimsFor("player-1"), support.TicketInput{
		Subject: "  Não consigo entrar no servidor  ",
		Body:    "Recebo kick imediato ao conectar.",
	})

	require.NoError(t, err)
	assert.Equal(t, support.StatusOpen, ticket.Status)
	assert.Equal(t, "player-1", ticket.UserID)
	assert.Equal(t, "Não consigo entrar no servidor", ticket.Subject)
	assert.Contains(t, repo.tickets, ticket.ID)
}

/*
TestService_Open_AnonymousDenied verifies anonymous callers cannot file
tickets.
*/
func TestService_Open_AnonymousDenied(t *testing.T) {
	service, repo := newFixture()

	_, err := service.Open(context.Background(), nil, support.TicketInput{Subject: "Assunto válido", Body: "Descrição válida aqui."})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Zero(t, repo.writes)
}

/*
TestService_ListOwn_ScopesToCaller verifies players only ever see their own
tickets.
*/
func TestService_ListOwn_ScopesToCaller(t *testing.T) {
	service, _ := newFixture()

	tickets, total, err := service.ListOwn(context.Background(), claimsFor("player-1"), pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tickets, 1)
	assert.Equal(t, "player-1", tickets[0].UserID)
}

/*
TestService_ListQueue_StaffOnly verifies moderators and admins see the full
queue while players are denied.
*/
func TestService_ListQueue_StaffOnly(t *testing.T) {
	service, _ := newFixture()

	for _, staff := range []string{"mod-1", "admin-1"} {
		tickets, total, err := service.ListQueue(context.Background(), claimsFor(staff), pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, tickets, 2)
	}

	_, _, err := service.ListQueue(context.Background(), claimsFor("player-1"), pagination.Params{Page: 1, Limit: 20})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestService_UpdateStatus_StaffOnly verifies status transitions are limited
to staff, and the owner cannot close their own ticket through this path.
*/
func TestService_UpdateStatus_StaffOnly(t *testing.T) {
	service, repo := newFixture()

	ticket, err := service.UpdateStatus(context.Background(), claimsFor("mod-1"), "ticket-1", support.StatusAnswered)
	require.NoError(t, err)
	assert.Equal(t, support.StatusAnswered, ticket.Status)

	_, err = service.UpdateStatus(context.Background(), claimsFor("player-1"), "ticket-1", support.StatusClosed)
	require.Error(t, err)
	assert.Equal(t, support.StatusAnswered, repo.tickets["ticket-1"].Status)
}
