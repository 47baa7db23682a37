package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
)

func newTestTicketService(store *memStore) *TicketService {
	return NewTicketService(newMemFactory(store), nil, "", nil)
}

func TestTicketCreateDefaultsToOpenNormal(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	svc := newTestTicketService(store)

	dto, err := svc.Create(context.Background(), CreateTicketDto{
		Subject:     "Printer on fire",
		Description: "Third floor, again",
		RequesterID: "u1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Open", dto.Status)
	assert.Equal(t, "Normal", dto.Priority)
	assert.Equal(t, "u1", dto.RequesterID)
	assert.NotEmpty(t, dto.ID)
}

func TestTicketCreateLeavesAssigneeNull(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putUser(entity.User{ID: "tech", UserName: "tech", Email: "t@b.c"})
	svc := newTestTicketService(store)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateTicketDto{Subject: "no owner yet", RequesterID: "u1"})
	require.NoError(t, err)

	// An unassigned ticket must carry a nil assignee so the column lands as
	// NULL; '' is not a valid uuid.
	stored := store.tickets[dto.ID]
	assert.Nil(t, stored.AssigneeID)
	assert.Empty(t, dto.AssigneeID)

	_, err = svc.Update(ctx, dto.ID, UpdateTicketDto{AssigneeID: "tech"})
	require.NoError(t, err)
	stored = store.tickets[dto.ID]
	require.NotNil(t, stored.AssigneeID)
	assert.Equal(t, "tech", *stored.AssigneeID)
}

func TestTicketCreateUnknownRequesterFails(t *testing.T) {
	svc := newTestTicketService(newMemStore())

	_, err := svc.Create(context.Background(), CreateTicketDto{Subject: "x", RequesterID: "ghost"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTicketAssignmentMovesOpenToInProgress(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putUser(entity.User{ID: "tech", UserName: "tech", Email: "t@b.c", Role: entity.RoleSupportTechnician})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "broken", Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityNormal, RequesterID: "u1"})
	svc := newTestTicketService(store)

	dto, err := svc.Update(context.Background(), "t1", UpdateTicketDto{AssigneeID: "tech"})

	require.NoError(t, err)
	assert.Equal(t, "InProgress", dto.Status)
	assert.Equal(t, "tech", dto.AssigneeID)
}

func TestTicketUpdateBlanksLeaveFieldsAlone(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "original", Description: "desc", Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityHigh, RequesterID: "u1"})
	svc := newTestTicketService(store)

	dto, err := svc.Update(context.Background(), "t1", UpdateTicketDto{Status: "Resolved"})

	require.NoError(t, err)
	assert.Equal(t, "original", dto.Subject)
	assert.Equal(t, "High", dto.Priority)
	assert.Equal(t, "Resolved", dto.Status)
}

func TestTicketGetMissingReturnsNotFound(t *testing.T) {
	svc := newTestTicketService(newMemStore())

	_, err := svc.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketRemove(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "x", RequesterID: "u1"})
	svc := newTestTicketService(store)

	require.NoError(t, svc.Remove(context.Background(), "t1"))
	_, exists := store.tickets["t1"]
	assert.False(t, exists)

	assert.ErrorIs(t, svc.Remove(context.Background(), "t1"), ErrTicketNotFound)
}

func TestTicketSearchWithoutESReturnsEmpty(t *testing.T) {
	svc := newTestTicketService(newMemStore())

	hits, err := svc.Search(context.Background(), "anything", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTicketGetByRequesterAndAssignee(t *testing.T) {
	store := newMemStore()
	store.putUser(entity.User{ID: "u1", UserName: "ana", Email: "a@b.c"})
	store.putUser(entity.User{ID: "tech", UserName: "tech", Email: "t@b.c"})
	store.putTicket(entity.Ticket{ID: "t1", Subject: "a", RequesterID: "u1", AssigneeID: optUUID("tech")})
	store.putTicket(entity.Ticket{ID: "t2", Subject: "b", RequesterID: "u1"})
	store.putTicket(entity.Ticket{ID: "t3", Subject: "c", RequesterID: "tech"})
	svc := newTestTicketService(store)
	ctx := context.Background()

	byReq, err := svc.GetByRequester(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byReq, 2)

	byAsg, err := svc.GetByAssignee(ctx, "tech")
	require.NoError(t, err)
	require.Len(t, byAsg, 1)
	assert.Equal(t, "t1", byAsg[0].ID)
}
