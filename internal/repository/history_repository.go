package repository

import (
	"context"
	"sync"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
)

const historyKey = "ticket_history"

// TicketHistoryRepository is the append-only audit ledger. Entries are
// never mutated or deleted once written; deleting a ticket leaves its
// entries orphaned but retained.
type TicketHistoryRepository interface {
	Append(ctx context.Context, entry *domain.TicketHistory) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error)
}

type historyRepository struct {
	codec blobCodec
	mu    sync.Mutex
}

// NewTicketHistoryRepository builds the ledger.
func NewTicketHistoryRepository(store persistence.BlobStore, maxBlobMB int) TicketHistoryRepository {
	return &historyRepository{codec: newBlobCodec(store, maxBlobMB)}
}

func (r *historyRepository) Append(ctx context.Context, entry *domain.TicketHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []domain.TicketHistory
	if err := r.codec.load(ctx, historyKey, &entries); err != nil {
		return err
	}
	entries = append(entries, *entry)
	return r.codec.save(ctx, historyKey, entries)
}

// ListByTicket returns entries in insertion order.
func (r *historyRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	var entries []domain.TicketHistory
	if err := r.codec.load(ctx, historyKey, &entries); err != nil {
		return nil, err
	}
	result := make([]domain.TicketHistory, 0, len(entries))
	for _, entry := range entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}
