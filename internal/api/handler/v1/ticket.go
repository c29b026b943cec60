package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1/request"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1/response"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/service"
)

type TicketService interface {
	CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	GetTicket(ctx context.Context, userID, ticketID uint) (domain.Ticket, error)
	ListTickets(ctx context.Context, userID uint) ([]domain.Ticket, error)
	UpdateTicket(ctx context.Context, userID uint, ticket domain.Ticket) (domain.Ticket, error)
	DeleteTicket(ctx context.Context, userID, ticketID uint) error
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleCreateTicket godoc
// @Summary      Add a ticket lot to the inventory
// @Tags         tickets
// @Produce      json
// @Param        request   body      request.TicketRequest true "request body"
// @Success      201      {object}   domain.Ticket
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tickets [post]
func (h *TicketHandler) HandleCreateTicket(ctx *gin.Context) {
	var req request.TicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.CreateTicket(ctx.Request.Context(), ticketFromRequest(currentUserID(ctx), 0, req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) || errors.Is(err, service.ErrInvalidQuantity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTicket -> h.svc.CreateTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleListTickets godoc
// @Summary      List the authenticated user's tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   domain.Ticket
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets [get]
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	tickets, err := h.svc.ListTickets(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleListTickets -> h.svc.ListTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetTicket godoc
// @Summary      Get one ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets/{ticketID} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), currentUserID(ctx), ticketID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleUpdateTicket godoc
// @Summary      Update a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Param        request    body      request.TicketRequest true "request body"
// @Success      200  {object}  domain.Ticket
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets/{ticketID} [put]
func (h *TicketHandler) HandleUpdateTicket(ctx *gin.Context) {
	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.TicketRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.UpdateTicket(ctx.Request.Context(), currentUserID(ctx), ticketFromRequest(currentUserID(ctx), ticketID, req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateTicket -> h.svc.UpdateTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleDeleteTicket godoc
// @Summary      Delete a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Success      204  "no content"
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets/{ticketID} [delete]
func (h *TicketHandler) HandleDeleteTicket(ctx *gin.Context) {
	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteTicket(ctx.Request.Context(), currentUserID(ctx), ticketID); err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteTicket -> h.svc.DeleteTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func ticketFromRequest(userID, ticketID uint, req request.TicketRequest) domain.Ticket {
	return domain.Ticket{
		ID:           ticketID,
		UserID:       userID,
		Artist:       req.Artist,
		EventDate:    req.EventDate,
		Location:     req.Location,
		Section:      req.Section,
		Row:          req.Row,
		Seat:         req.Seat,
		Quantity:     req.Quantity,
		Cost:         req.Cost,
		CostCurrency: req.CostCurrency,
		Status:       domain.TicketStatus(req.Status),
	}
}
