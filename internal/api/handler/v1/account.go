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

type AccountService interface {
	CreateAccount(ctx context.Context, account domain.PlatformAccount) (domain.PlatformAccount, error)
	GetAccount(ctx context.Context, userID, accountID uint) (domain.PlatformAccount, error)
	ListAccounts(ctx context.Context, userID uint) ([]domain.PlatformAccount, error)
	UpdateAccount(ctx context.Context, userID uint, account domain.PlatformAccount) (domain.PlatformAccount, error)
	DeleteAccount(ctx context.Context, userID, accountID uint) error
}

type AccountHandler struct {
	svc AccountService
}

func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{
		svc: svc,
	}
}

// HandleCreateAccount godoc
// @Summary      Store platform credentials
// @Tags         accounts
// @Produce      json
// @Param        request   body      request.PlatformAccountRequest true "request body"
// @Success      201      {object}   domain.PlatformAccount
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /accounts [post]
func (h *AccountHandler) HandleCreateAccount(ctx *gin.Context) {
	var req request.PlatformAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.CreateAccount(ctx.Request.Context(), domain.PlatformAccount{
		UserID:      currentUserID(ctx),
		Platform:    req.Platform,
		Email:       req.Email,
		Password:    req.Password,
		TwoFASecret: req.TwoFASecret,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAccount -> h.svc.CreateAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, account)
}

// HandleListAccounts godoc
// @Summary      List platform accounts (credentials redacted)
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   domain.PlatformAccount
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /accounts [get]
func (h *AccountHandler) HandleListAccounts(ctx *gin.Context) {
	accounts, err := h.svc.ListAccounts(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleListAccounts -> h.svc.ListAccounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// HandleGetAccount godoc
// @Summary      Get one platform account with decrypted credentials
// @Tags         accounts
// @Produce      json
// @Param        accountID   path      int  true  "account ID"
// @Success      200  {object}  domain.PlatformAccount
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /accounts/{accountID} [get]
func (h *AccountHandler) HandleGetAccount(ctx *gin.Context) {
	accountID, err := parseIDParam(ctx, "accountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.GetAccount(ctx.Request.Context(), currentUserID(ctx), accountID)
	if err != nil {
		if errors.Is(err, service.ErrPlatformAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPlatformAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetAccount -> h.svc.GetAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleUpdateAccount godoc
// @Summary      Update a platform account
// @Tags         accounts
// @Produce      json
// @Param        accountID   path      int  true  "account ID"
// @Param        request     body      request.PlatformAccountRequest true "request body"
// @Success      200  {object}  domain.PlatformAccount
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /accounts/{accountID} [put]
func (h *AccountHandler) HandleUpdateAccount(ctx *gin.Context) {
	accountID, err := parseIDParam(ctx, "accountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.PlatformAccountRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	account, err := h.svc.UpdateAccount(ctx.Request.Context(), currentUserID(ctx), domain.PlatformAccount{
		ID:          accountID,
		Platform:    req.Platform,
		Email:       req.Email,
		Password:    req.Password,
		TwoFASecret: req.TwoFASecret,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlatformAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPlatformAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateAccount -> h.svc.UpdateAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, account)
}

// HandleDeleteAccount godoc
// @Summary      Delete a platform account
// @Tags         accounts
// @Produce      json
// @Param        accountID   path      int  true  "account ID"
// @Success      204  "no content"
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Security     BearerAuth
// @Router       /accounts/{accountID} [delete]
func (h *AccountHandler) HandleDeleteAccount(ctx *gin.Context) {
	accountID, err := parseIDParam(ctx, "accountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteAccount(ctx.Request.Context(), currentUserID(ctx), accountID); err != nil {
		if errors.Is(err, service.ErrPlatformAccountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrPlatformAccountNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteAccount -> h.svc.DeleteAccount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
