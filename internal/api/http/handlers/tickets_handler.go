package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/service-desk/helpdesk/internal/api/dto"
	"github.com/service-desk/helpdesk/internal/auth"
	"github.com/service-desk/helpdesk/internal/domain"
	"github.com/service-desk/helpdesk/internal/service"
	"github.com/service-desk/helpdesk/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// List GET /tickets. An optional search term filters by title, description,
// category or id.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}

	var (
		tickets []domain.Ticket
		err     error
	)
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		tickets, err = h.service.Search(c.UserContext(), actor, term)
	} else {
		tickets, err = h.service.GetAll(c.UserContext(), actor)
	}
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}

	ticket, err := h.service.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.UserContext(), actor, ticket.ID)
	if err != nil {
		return err
	}
	history, err := h.service.ListHistory(c.UserContext(), actor, ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, comments, history)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.TicketUpdateInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Priority:           req.Priority,
		Status:             req.Status,
		Resolution:         req.Resolution,
		SatisfactionRating: req.SatisfactionRating,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve POST /tickets/:id/approve.
func (h *TicketsHandler) Approve(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	ticket, err := h.service.Approve(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Reject POST /tickets/:id/reject.
func (h *TicketsHandler) Reject(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	var req dto.RejectTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Reject(c.UserContext(), actor, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Assign(c.UserContext(), actor, c.Params("id"), req.TechnicianID, req.TechnicianName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// TakeOwnership POST /tickets/:id/take.
func (h *TicketsHandler) TakeOwnership(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	ticket, err := h.service.TakeOwnership(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.UserContext(), actor, c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	comments, err := h.service.ListComments(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListHistory GET /tickets/:id/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return util.NewUnauthenticated("authentication required")
	}
	history, err := h.service.ListHistory(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": historyResponses(history)})
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:               ticket.ID,
		Title:            ticket.Title,
		Category:         ticket.Category,
		Status:           ticket.Status,
		Priority:         ticket.Priority,
		CreatedBy:        ticket.CreatedBy,
		CreatedByName:    ticket.CreatedByName,
		AssignedTo:       ticket.AssignedTo,
		AssignedToName:   ticket.AssignedToName,
		RequiresApproval: ticket.RequiresApproval,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, comments []domain.TicketComment, history []domain.TicketHistory) dto.TicketDetailResponse {
	commentItems := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentItems = append(commentItems, commentResponse(&comments[i]))
	}
	target := domain.SLAHours[ticket.Priority]
	return dto.TicketDetailResponse{
		Ticket: ticket,
		SLA: dto.SLAResponse{
			ResponseHours:   target.ResponseHours,
			ResolutionHours: target.ResolutionHours,
		},
		Comments: commentItems,
		History:  historyResponses(history),
	}
}

func commentResponse(comment *domain.TicketComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		Content:    comment.Content,
		IsInternal: comment.IsInternal,
		UserID:     comment.UserID,
		UserName:   comment.UserName,
		UserRole:   comment.UserRole,
		CreatedAt:  comment.CreatedAt,
	}
}

func historyResponses(entries []domain.TicketHistory) []dto.TicketHistoryResponse {
	resp := make([]dto.TicketHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.TicketHistoryResponse{
			ID:             entry.ID,
			TicketID:       entry.TicketID,
			Action:         entry.Action,
			Description:    entry.Description,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			UserID:         entry.UserID,
			UserName:       entry.UserName,
			UserRole:       entry.UserRole,
			CreatedAt:      entry.CreatedAt,
		})
	}
	return resp
}
