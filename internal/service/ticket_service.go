package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/events"
	"github.com/service-desk/helpdesk/internal/repository"
	"github.com/service-desk/helpdesk/pkg/util"
)

// TicketService is the ticket lifecycle engine. Every operation takes the
// acting identity explicitly; guards consult the permission catalog and the
// status transition table before any mutation, and every successful
// mutation appends exactly one audit ledger entry.
type TicketService struct {
	tickets    repository.TicketRepository
	history    repository.TicketHistoryRepository
	comments   repository.TicketCommentRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the engine.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	HistoryRepo repository.TicketHistoryRepository
	CommentRepo repository.TicketCommentRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
}

// TicketUpdateInput carries partial updates; nil fields are left untouched.
type TicketUpdateInput struct {
	Title              *string
	Description        *string
	Category           *domain.TicketCategory
	Priority           *domain.TicketPriority
	Status             *domain.TicketStatus
	Resolution         *string
	SatisfactionRating *int
}

// NewTicketService constructs the engine.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		history:    deps.HistoryRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates the payload and persists a new ticket. URGENT requests
// filed by end-users enter the approval sub-workflow instead of OPEN.
func (s *TicketService) Create(ctx context.Context, actor *domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, util.NewValidationError("title and description are required", nil)
	}
	if titleLen := utf8.RuneCountInString(title); titleLen < domain.TitleMinLength || titleLen > domain.TitleMaxLength {
		return nil, util.NewValidationError(
			fmt.Sprintf("title must be between %d and %d characters", domain.TitleMinLength, domain.TitleMaxLength), nil)
	}
	if descLen := utf8.RuneCountInString(description); descLen < domain.DescriptionMinLength || descLen > domain.DescriptionMaxLength {
		return nil, util.NewValidationError(
			fmt.Sprintf("description must be between %d and %d characters", domain.DescriptionMinLength, domain.DescriptionMaxLength), nil)
	}
	if !input.Category.Valid() {
		return nil, util.NewValidationError("invalid category", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, util.NewValidationError("invalid priority", nil)
	}

	now := time.Now()
	ticket := &domain.Ticket{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      description,
		Category:         input.Category,
		Priority:         priority,
		Status:           domain.TicketStatusOpen,
		RequiresApproval: priority == domain.TicketPriorityUrgent && actor.Role == domain.RoleUser,
		CreatedBy:        actor.ID,
		CreatedByName:    actor.Name,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if ticket.RequiresApproval {
		ticket.Status = domain.TicketStatusPendingApproval
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionCreated, "Ticket created", nil, &ticket.Status); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:            ticket.Title,
			Category:         ticket.Category,
			Priority:         ticket.Priority,
			Status:           ticket.Status,
			RequiresApproval: ticket.RequiresApproval,
		},
	})
	return ticket, nil
}

// Update applies a partial edit. Ownership and role are checked before
// transition validity for status changes; state applicability is checked
// before the transition table for plain field edits. On any guard failure
// nothing is applied.
func (s *TicketService) Update(ctx context.Context, actor *domain.Actor, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := ticket.Status
	changesStatus := input.Status != nil && *input.Status != ticket.Status
	editsFields := input.Title != nil || input.Description != nil || input.Category != nil ||
		input.Priority != nil || input.Resolution != nil

	if actor.Role == domain.RoleUser {
		if ticket.CreatedBy != actor.ID {
			return nil, util.NewForbidden("you may only edit your own tickets")
		}
		// Owner carve-out: confirm or reopen a resolved ticket.
		ownerTransition := changesStatus && !editsFields &&
			domain.IsOwnerTransition(ticket.Status, *input.Status)
		editWindow := ticket.Status == domain.TicketStatusOpen ||
			ticket.Status == domain.TicketStatusPendingApproval
		if !ownerTransition && !editWindow {
			return nil, util.NewForbidden("ticket can no longer be edited by its requester")
		}
	}

	if editsFields && !domain.EditableStatuses[ticket.Status] {
		return nil, util.NewInvalidState("ticket fields cannot be edited in its current status",
			map[string]any{"status": ticket.Status})
	}

	if changesStatus {
		target := *input.Status
		if !target.Valid() {
			return nil, util.NewValidationError("invalid status", nil)
		}
		if !domain.CanReach(ticket.Status, target) {
			return nil, util.NewInvalidTransition(
				fmt.Sprintf("cannot move ticket from %s to %s", ticket.Status, target),
				map[string]any{"from": ticket.Status, "to": target})
		}
		ownerBypass := actor.Role == domain.RoleUser && ticket.CreatedBy == actor.ID &&
			domain.IsOwnerTransition(ticket.Status, target)
		if !ownerBypass && !domain.RoleMayTransition(actor.Role, ticket.Status) {
			return nil, util.NewForbidden("role not allowed to perform this transition")
		}
	}

	if input.SatisfactionRating != nil {
		if !changesStatus || *input.Status != domain.TicketStatusClosed {
			return nil, util.NewValidationError("satisfaction rating is only accepted when closing a ticket", nil)
		}
		if *input.SatisfactionRating < 1 || *input.SatisfactionRating > 5 {
			return nil, util.NewValidationError("satisfaction rating must be between 1 and 5", nil)
		}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if titleLen := utf8.RuneCountInString(title); titleLen < domain.TitleMinLength || titleLen > domain.TitleMaxLength {
			return nil, util.NewValidationError(
				fmt.Sprintf("title must be between %d and %d characters", domain.TitleMinLength, domain.TitleMaxLength), nil)
		}
		ticket.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if descLen := utf8.RuneCountInString(description); descLen < domain.DescriptionMinLength || descLen > domain.DescriptionMaxLength {
			return nil, util.NewValidationError(
				fmt.Sprintf("description must be between %d and %d characters", domain.DescriptionMinLength, domain.DescriptionMaxLength), nil)
		}
		ticket.Description = description
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, util.NewValidationError("invalid category", nil)
		}
		ticket.Category = *input.Category
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, util.NewValidationError("invalid priority", nil)
		}
		ticket.Priority = *input.Priority
	}

	now := time.Now()
	if changesStatus {
		ticket.Status = *input.Status
		switch ticket.Status {
		case domain.TicketStatusResolved:
			ticket.ResolvedBy = actor.ID
			ticket.ResolvedByName = actor.Name
			ticket.ResolvedAt = &now
			if input.Resolution != nil {
				ticket.Resolution = strings.TrimSpace(*input.Resolution)
			}
		case domain.TicketStatusClosed:
			ticket.ClosedBy = actor.ID
			ticket.ClosedByName = actor.Name
			ticket.ClosedAt = &now
			if input.SatisfactionRating != nil {
				ticket.SatisfactionRating = *input.SatisfactionRating
			}
		}
	} else if input.Resolution != nil {
		ticket.Resolution = strings.TrimSpace(*input.Resolution)
	}

	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if changesStatus {
		action := statusChangeAction(previousStatus, ticket.Status)
		description := fmt.Sprintf("Status changed from %s to %s", previousStatus, ticket.Status)
		if err := s.appendHistory(ctx, actor, ticket.ID, action, description, &previousStatus, &ticket.Status); err != nil {
			return nil, err
		}
		s.publish(ctx, actor, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload:  events.TicketStatusChangedPayload{OldStatus: previousStatus, NewStatus: ticket.Status},
		})
	} else {
		if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionUpdated, "Ticket details updated", nil, nil); err != nil {
			return nil, err
		}
		s.publish(ctx, actor, events.Event{Type: events.EventTicketUpdated, TicketID: ticket.ID})
	}
	return ticket, nil
}

// Approve moves a PENDING_APPROVAL ticket back to the OPEN queue. Failure
// paths never mutate the record.
func (s *TicketService) Approve(ctx context.Context, actor *domain.Actor, id string) (*domain.Ticket, error) {
	ticket, err := s.approvalGate(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previousStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusOpen
	ticket.ApprovedBy = actor.ID
	ticket.ApprovedByName = actor.Name
	ticket.ApprovedAt = &now
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Urgent ticket approved by %s", actor.Name)
	if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionApproved, description, &previousStatus, &ticket.Status); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.Event{Type: events.EventTicketApproved, TicketID: ticket.ID})
	return ticket, nil
}

// Reject cancels a PENDING_APPROVAL ticket, recording the reason.
func (s *TicketService) Reject(ctx context.Context, actor *domain.Actor, id, reason string) (*domain.Ticket, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, util.NewValidationError("rejection reason is required", nil)
	}
	ticket, err := s.approvalGate(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previousStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusCancelled
	ticket.RejectionReason = reason
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Urgent ticket rejected: %s", reason)
	if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionRejected, description, &previousStatus, &ticket.Status); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketRejected,
		TicketID: ticket.ID,
		Payload:  events.TicketRejectedPayload{Reason: reason},
	})
	return ticket, nil
}

func (s *TicketService) approvalGate(ctx context.Context, actor *domain.Actor, id string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if !domain.PermissionsFor(actor.Role).CanApproveTickets {
		return nil, util.NewForbidden("role not allowed to approve or reject tickets")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusPendingApproval {
		return nil, util.NewInvalidState("ticket is not awaiting approval",
			map[string]any{"status": ticket.Status})
	}
	return ticket, nil
}

// Assign hands the ticket to a technician and forces IN_PROGRESS.
// Technicians may only self-assign; supervisors and admins may assign
// anyone.
func (s *TicketService) Assign(ctx context.Context, actor *domain.Actor, id, technicianID, technicianName string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	selfAssign := actor.Role == domain.RoleTechnician && technicianID == actor.ID
	if !domain.PermissionsFor(actor.Role).CanAssignTickets && !selfAssign {
		return nil, util.NewForbidden("role not allowed to assign tickets")
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusInProgress {
		return nil, util.NewInvalidState("ticket cannot be assigned in its current status",
			map[string]any{"status": ticket.Status})
	}
	if selfAssign && ticket.AssignedTo != "" && ticket.AssignedTo != actor.ID {
		return nil, util.NewForbidden("ticket is already assigned to another technician")
	}

	previousStatus := ticket.Status
	previousAssignee := ticket.AssignedTo
	previousAssigneeName := ticket.AssignedToName
	now := time.Now()
	ticket.AssignedTo = technicianID
	ticket.AssignedToName = technicianName
	ticket.Status = domain.TicketStatusInProgress
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Assigned to %s", technicianName)
	if previousAssignee != "" && previousAssignee != technicianID {
		description = fmt.Sprintf("Reassigned from %s to %s", previousAssigneeName, technicianName)
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionAssigned, description, &previousStatus, &ticket.Status); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			AssigneeID:       technicianID,
			AssigneeName:     technicianName,
			PreviousAssignee: previousAssignee,
		},
	})
	return ticket, nil
}

// TakeOwnership lets a technician pull a ticket for themselves.
func (s *TicketService) TakeOwnership(ctx context.Context, actor *domain.Actor, id string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if actor.Role == domain.RoleUser {
		return nil, util.NewForbidden("requesters cannot take ownership of tickets")
	}
	return s.Assign(ctx, actor, id, actor.ID, actor.Name)
}

// Delete hard-removes a ticket. History and comments for the id are
// retained, not cascaded.
func (s *TicketService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if actor == nil {
		return util.NewUnauthenticated("authentication required")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.PermissionsFor(actor.Role).CanDeleteAllTickets {
		owner := ticket.CreatedBy == actor.ID
		deletable := ticket.Status == domain.TicketStatusOpen ||
			ticket.Status == domain.TicketStatusPendingApproval
		if !owner || !deletable {
			return util.NewForbidden("not allowed to delete this ticket")
		}
	}

	if err := s.tickets.Remove(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, actor, events.Event{Type: events.EventTicketDeleted, TicketID: id})
	return nil
}

// AddComment appends a note to the ticket thread. End-users cannot author
// internal notes; the flag is silently downgraded.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.Actor, id, content string, isInternal bool) (*domain.TicketComment, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, util.NewValidationError("comment content is required", nil)
	}
	ticket, err := s.visibleTicket(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleUser {
		isInternal = false
	}

	comment := &domain.TicketComment{
		ID:         uuid.NewString(),
		TicketID:   ticket.ID,
		Content:    content,
		IsInternal: isInternal,
		UserID:     actor.ID,
		UserName:   actor.Name,
		UserRole:   actor.Role,
		CreatedAt:  time.Now(),
	}
	if err := s.comments.Append(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, domain.ActionCommented, "Comment added", nil, nil); err != nil {
		return nil, err
	}
	s.publish(ctx, actor, events.Event{
		Type:     events.EventTicketCommented,
		TicketID: ticket.ID,
		Payload: events.TicketCommentedPayload{
			CommentID:  comment.ID,
			IsInternal: comment.IsInternal,
			Preview:    preview(comment.Content, 120),
		},
	})
	return comment, nil
}

// GetAll returns the tickets visible to the actor, ordered by priority
// severity then recency.
func (s *TicketService) GetAll(ctx context.Context, actor *domain.Actor) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	tickets, err := s.tickets.Load(ctx)
	if err != nil {
		return nil, err
	}
	visible := filterVisibleTickets(actor, tickets)
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].Priority.Severity() != visible[j].Priority.Severity() {
			return visible[i].Priority.Severity() > visible[j].Priority.Severity()
		}
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// Search filters the visible set by a case-insensitive term over title,
// description, category and id.
func (s *TicketService) Search(ctx context.Context, actor *domain.Actor, term string) ([]domain.Ticket, error) {
	tickets, err := s.GetAll(ctx, actor)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return tickets, nil
	}
	matched := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if strings.Contains(strings.ToLower(ticket.Title), term) ||
			strings.Contains(strings.ToLower(ticket.Description), term) ||
			strings.Contains(strings.ToLower(string(ticket.Category)), term) ||
			strings.Contains(strings.ToLower(ticket.ID), term) {
			matched = append(matched, ticket)
		}
	}
	return matched, nil
}

// GetByID fetches a single ticket. A ticket hidden from the actor is
// reported as not found so unprivileged callers cannot probe existence.
func (s *TicketService) GetByID(ctx context.Context, actor *domain.Actor, id string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	return s.visibleTicket(ctx, actor, id)
}

// ListComments returns the thread with internal notes filtered per role.
func (s *TicketService) ListComments(ctx context.Context, actor *domain.Actor, ticketID string) ([]domain.TicketComment, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if _, err := s.visibleTicket(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return filterVisibleComments(actor, comments), nil
}

// ListHistory returns the audit trail for a visible ticket.
func (s *TicketService) ListHistory(ctx context.Context, actor *domain.Actor, ticketID string) ([]domain.TicketHistory, error) {
	if actor == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}
	if _, err := s.visibleTicket(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	return s.history.ListByTicket(ctx, ticketID)
}

func (s *TicketService) visibleTicket(ctx context.Context, actor *domain.Actor, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !TicketVisibleTo(actor, ticket) {
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	return ticket, nil
}

func (s *TicketService) appendHistory(ctx context.Context, actor *domain.Actor, ticketID string, action domain.TicketAction, description string, previous, next *domain.TicketStatus) error {
	entry := &domain.TicketHistory{
		ID:             uuid.NewString(),
		TicketID:       ticketID,
		Action:         action,
		Description:    description,
		PreviousStatus: previous,
		NewStatus:      next,
		UserID:         actor.ID,
		UserName:       actor.Name,
		UserRole:       actor.Role,
		CreatedAt:      time.Now(),
	}
	return s.history.Append(ctx, entry)
}

func (s *TicketService) publish(ctx context.Context, actor *domain.Actor, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{ID: actor.ID, Name: actor.Name, Role: actor.Role}
	_ = s.dispatcher.Publish(ctx, event)
}

func statusChangeAction(previous, next domain.TicketStatus) domain.TicketAction {
	switch {
	case next == domain.TicketStatusClosed:
		return domain.ActionClosed
	case next == domain.TicketStatusCancelled:
		return domain.ActionCancelled
	case next == domain.TicketStatusInProgress &&
		(previous == domain.TicketStatusResolved || previous == domain.TicketStatusClosed):
		return domain.ActionReopened
	case next == domain.TicketStatusOpen && previous == domain.TicketStatusCancelled:
		return domain.ActionReopened
	default:
		return domain.ActionStatusChanged
	}
}

// preview truncates on rune boundaries so multibyte text stays intact.
func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
