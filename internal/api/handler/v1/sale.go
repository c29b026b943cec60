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

type SaleService interface {
	CreateSale(ctx context.Context, userID uint, sale domain.Sale) (domain.Sale, error)
	ListSales(ctx context.Context, userID, ticketID uint) ([]domain.Sale, error)
	UpdateSale(ctx context.Context, userID uint, sale domain.Sale) (domain.Sale, error)
	DeleteSale(ctx context.Context, userID, saleID uint) error
}

type SaleHandler struct {
	svc SaleService
}

func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{
		svc: svc,
	}
}

// HandleCreateSale godoc
// @Summary      Record a sale against a ticket
// @Tags         sales
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Param        request    body      request.SaleRequest true "request body"
// @Success      201  {object}  domain.Sale
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets/{ticketID}/sales [post]
func (h *SaleHandler) HandleCreateSale(ctx *gin.Context) {
	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SaleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sale, err := h.svc.CreateSale(ctx.Request.Context(), currentUserID(ctx), saleFromRequest(ticketID, 0, req))
	if err != nil {
		renderSaleErr(ctx, "v1.HandleCreateSale", err)

		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleListSales godoc
// @Summary      List a ticket's sales
// @Tags         sales
// @Produce      json
// @Param        ticketID   path      int  true  "ticket ID"
// @Success      200  {array}   domain.Sale
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /tickets/{ticketID}/sales [get]
func (h *SaleHandler) HandleListSales(ctx *gin.Context) {
	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sales, err := h.svc.ListSales(ctx.Request.Context(), currentUserID(ctx), ticketID)
	if err != nil {
		renderSaleErr(ctx, "v1.HandleListSales", err)

		return
	}

	ctx.JSON(http.StatusOK, sales)
}

// HandleUpdateSale godoc
// @Summary      Update a sale
// @Tags         sales
// @Produce      json
// @Param        saleID   path      int  true  "sale ID"
// @Param        request  body      request.SaleRequest true "request body"
// @Success      200  {object}  domain.Sale
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /sales/{saleID} [put]
func (h *SaleHandler) HandleUpdateSale(ctx *gin.Context) {
	saleID, err := parseIDParam(ctx, "saleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SaleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sale, err := h.svc.UpdateSale(ctx.Request.Context(), currentUserID(ctx), saleFromRequest(0, saleID, req))
	if err != nil {
		renderSaleErr(ctx, "v1.HandleUpdateSale", err)

		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// HandleDeleteSale godoc
// @Summary      Delete a sale
// @Tags         sales
// @Produce      json
// @Param        saleID   path      int  true  "sale ID"
// @Success      204  "no content"
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /sales/{saleID} [delete]
func (h *SaleHandler) HandleDeleteSale(ctx *gin.Context) {
	saleID, err := parseIDParam(ctx, "saleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteSale(ctx.Request.Context(), currentUserID(ctx), saleID); err != nil {
		renderSaleErr(ctx, "v1.HandleDeleteSale", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

func renderSaleErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrSaleNotFound))
	case errors.Is(err, service.ErrTicketNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrTicketNotFound))
	case errors.Is(err, service.ErrQuantityExceeded),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownCurrency):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

func saleFromRequest(ticketID, saleID uint, req request.SaleRequest) domain.Sale {
	return domain.Sale{
		ID:           saleID,
		TicketID:     ticketID,
		Quantity:     req.Quantity,
		SalePrice:    req.SalePrice,
		SaleCurrency: req.SaleCurrency,
		BuyerName:    req.BuyerName,
		BuyerEmail:   req.BuyerEmail,
		TicketsSent:  req.TicketsSent,
	}
}
