package repository

import (
	"context"
	"sync"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/pkg/util"
)

const ticketsKey = "tickets"

// TicketRepository encapsulates ticket persistence. Storage does not
// guarantee list ordering; display ordering is applied by callers.
type TicketRepository interface {
	Load(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Insert(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Remove(ctx context.Context, id string) error
}

type ticketRepository struct {
	codec blobCodec

	// Serializes read-modify-write cycles within this process. Concurrent
	// writers in other processes still race last-write-wins on the shared
	// blob; see DESIGN.md.
	mu sync.Mutex
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(store persistence.BlobStore, maxBlobMB int) TicketRepository {
	return &ticketRepository{codec: newBlobCodec(store, maxBlobMB)}
}

func (r *ticketRepository) Load(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	if err := r.codec.load(ctx, ticketsKey, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	tickets, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			ticket := tickets[i]
			return &ticket, nil
		}
	}
	return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": id})
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets, err := r.Load(ctx)
	if err != nil {
		return err
	}
	tickets = append([]domain.Ticket{*ticket}, tickets...)
	return r.codec.save(ctx, ticketsKey, tickets)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == ticket.ID {
			tickets[i] = *ticket
			return r.codec.save(ctx, ticketsKey, tickets)
		}
	}
	return util.NewNotFound("ticket", map[string]any{"ticket_id": ticket.ID})
}

func (r *ticketRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tickets, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			tickets = append(tickets[:i], tickets[i+1:]...)
			return r.codec.save(ctx, ticketsKey, tickets)
		}
	}
	return util.NewNotFound("ticket", map[string]any{"ticket_id": id})
}
