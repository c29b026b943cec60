package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1/request"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1/response"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/service"
)

type ReminderService interface {
	Run(ctx context.Context, now time.Time) (domain.RunSummary, error)
	Eligible(ctx context.Context, now time.Time) ([]domain.ReminderTicket, error)
	RecordSent(ctx context.Context, ticketID uint, messageID string, sentAt time.Time) error
	Acknowledge(ctx context.Context, ticketID uint, actorDiscordID string) error
}

type ReminderHandler struct {
	svc ReminderService
}

func NewReminderHandler(svc ReminderService) *ReminderHandler {
	return &ReminderHandler{
		svc: svc,
	}
}

// HandleRunReminders godoc
// @Summary      Run the delivery reminder sweep now
// @Tags         reminders
// @Produce      json
// @Success      200  {object}  response.RunResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     CronSecret
// @Router       /cron/reminders/run [post]
func (h *ReminderHandler) HandleRunReminders(ctx *gin.Context) {
	summary, err := h.svc.Run(ctx.Request.Context(), time.Now().UTC())
	if err != nil {
		err = fmt.Errorf("v1.HandleRunReminders -> h.svc.Run -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RunResponse{
		Checked: summary.Checked,
		Results: summary.Results,
	})
}

// HandleListEligible godoc
// @Summary      Preview tickets due for a delivery reminder
// @Tags         reminders
// @Produce      json
// @Success      200  {object}  response.EligibleResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     CronSecret
// @Router       /cron/reminders/eligible [get]
func (h *ReminderHandler) HandleListEligible(ctx *gin.Context) {
	tickets, err := h.svc.Eligible(ctx.Request.Context(), time.Now().UTC())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEligible -> h.svc.Eligible -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.EligibleResponse{
		Checked: len(tickets),
		Tickets: tickets,
	})
}

// HandleRecordSent godoc
// @Summary      Record an externally delivered reminder
// @Tags         reminders
// @Produce      json
// @Param        request   body      request.RecordSentRequest true "request body"
// @Success      204  "no content"
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     CronSecret
// @Router       /cron/reminders/sent [post]
func (h *ReminderHandler) HandleRecordSent(ctx *gin.Context) {
	var req request.RecordSentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.RecordSent(ctx.Request.Context(), req.TicketID, req.MessageID, time.Now().UTC()); err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleRecordSent -> h.svc.RecordSent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAcknowledge godoc
// @Summary      Mark a ticket's delivery reminder as acknowledged
// @Tags         reminders
// @Produce      json
// @Param        request   body      request.AckRequest true "request body"
// @Success      204  "no content"
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reminders/ack [post]
func (h *ReminderHandler) HandleAcknowledge(ctx *gin.Context) {
	var req request.AckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Acknowledge(ctx.Request.Context(), req.TicketID, req.DiscordID); err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleAcknowledge -> h.svc.Acknowledge -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
