package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/pkg/util"
)

func newTicket(id, title string) *domain.Ticket {
	now := time.Now()
	return &domain.Ticket{
		ID:          id,
		Title:       title,
		Description: "descrição de teste com tamanho válido",
		Category:    domain.TicketCategoryHardware,
		Priority:    domain.TicketPriorityMedium,
		Status:      domain.TicketStatusOpen,
		CreatedBy:   "u1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTicketRepositoryRoundTrip(t *testing.T) {
	repo := NewTicketRepository(persistence.NewMemoryStore(), 4)
	ctx := context.Background()

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Insert(ctx, newTicket("t-1", "Primeiro")))
	require.NoError(t, repo.Insert(ctx, newTicket("t-2", "Segundo")))

	tickets, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	// Newest insert sits first.
	assert.Equal(t, "t-2", tickets[0].ID)
	assert.Equal(t, "t-1", tickets[1].ID)

	found, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "Primeiro", found.Title)
}

func TestTicketRepositoryUpdate(t *testing.T) {
	repo := NewTicketRepository(persistence.NewMemoryStore(), 4)
	ctx := context.Background()

	ticket := newTicket("t-1", "Original")
	require.NoError(t, repo.Insert(ctx, ticket))

	ticket.Title = "Atualizado"
	ticket.Status = domain.TicketStatusInProgress
	require.NoError(t, repo.Update(ctx, ticket))

	stored, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "Atualizado", stored.Title)
	assert.Equal(t, domain.TicketStatusInProgress, stored.Status)

	err = repo.Update(ctx, newTicket("missing", "Fantasma"))
	assert.Equal(t, util.CodeNotFound, util.CodeOf(err))
}

func TestTicketRepositoryRemove(t *testing.T) {
	repo := NewTicketRepository(persistence.NewMemoryStore(), 4)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newTicket("t-1", "Primeiro")))
	require.NoError(t, repo.Insert(ctx, newTicket("t-2", "Segundo")))

	require.NoError(t, repo.Remove(ctx, "t-1"))

	_, err := repo.GetByID(ctx, "t-1")
	assert.Equal(t, util.CodeNotFound, util.CodeOf(err))

	remaining, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "t-2", remaining[0].ID)

	err = repo.Remove(ctx, "t-1")
	assert.Equal(t, util.CodeNotFound, util.CodeOf(err))
}

func TestHistoryRepositoryPreservesInsertionOrder(t *testing.T) {
	repo := NewTicketHistoryRepository(persistence.NewMemoryStore(), 4)
	ctx := context.Background()

	for i, action := range []domain.TicketAction{domain.ActionCreated, domain.ActionAssigned, domain.ActionClosed} {
		entry := &domain.TicketHistory{
			ID:        string(rune('a' + i)),
			TicketID:  "t-1",
			Action:    action,
			UserID:    "u1",
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Append(ctx, entry))
	}
	require.NoError(t, repo.Append(ctx, &domain.TicketHistory{
		ID: "x", TicketID: "t-2", Action: domain.ActionCreated, UserID: "u2", CreatedAt: time.Now(),
	}))

	entries, err := repo.ListByTicket(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ActionCreated, entries[0].Action)
	assert.Equal(t, domain.ActionAssigned, entries[1].Action)
	assert.Equal(t, domain.ActionClosed, entries[2].Action)
}

func TestCommentRepositoryFiltersByTicket(t *testing.T) {
	repo := NewTicketCommentRepository(persistence.NewMemoryStore(), 4)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &domain.TicketComment{ID: "c1", TicketID: "t-1", Content: "primeiro"}))
	require.NoError(t, repo.Append(ctx, &domain.TicketComment{ID: "c2", TicketID: "t-2", Content: "outro chamado"}))
	require.NoError(t, repo.Append(ctx, &domain.TicketComment{ID: "c3", TicketID: "t-1", Content: "segundo"}))

	comments, err := repo.ListByTicket(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "primeiro", comments[0].Content)
	assert.Equal(t, "segundo", comments[1].Content)
}

func TestBlobCodecRejectsOversizedCollections(t *testing.T) {
	repo := NewTicketCommentRepository(persistence.NewMemoryStore(), 1)
	ctx := context.Background()

	big := make([]byte, 2*1024*1024)
	for i := range big {
		big[i] = 'a'
	}
	err := repo.Append(ctx, &domain.TicketComment{ID: "c1", TicketID: "t-1", Content: string(big)})
	assert.Equal(t, util.CodeStorage, util.CodeOf(err))
}
