package repository

import (
	"context"
	"sync"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/persistence"
)

const commentsKey = "ticket_comments"

// TicketCommentRepository stores ticket comments. Append-only; internal
// visibility is computed on read by the caller, never stored per reader.
type TicketCommentRepository interface {
	Append(ctx context.Context, comment *domain.TicketComment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketComment, error)
}

type commentRepository struct {
	codec blobCodec
	mu    sync.Mutex
}

// NewTicketCommentRepository builds the repository.
func NewTicketCommentRepository(store persistence.BlobStore, maxBlobMB int) TicketCommentRepository {
	return &commentRepository{codec: newBlobCodec(store, maxBlobMB)}
}

func (r *commentRepository) Append(ctx context.Context, comment *domain.TicketComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var comments []domain.TicketComment
	if err := r.codec.load(ctx, commentsKey, &comments); err != nil {
		return err
	}
	comments = append(comments, *comment)
	return r.codec.save(ctx, commentsKey, comments)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	var comments []domain.TicketComment
	if err := r.codec.load(ctx, commentsKey, &comments); err != nil {
		return nil, err
	}
	result := make([]domain.TicketComment, 0, len(comments))
	for _, comment := range comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}
