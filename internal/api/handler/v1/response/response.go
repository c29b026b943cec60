package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
)

type Err struct {
	statusCode int
	cause      error

	Message string `json:"error"`
}

func ErrBadRequest(err error) *Err {
	return &Err{statusCode: http.StatusBadRequest, cause: err, Message: err.Error()}
}

func ErrUnauthorized(err error) *Err {
	return &Err{statusCode: http.StatusUnauthorized, cause: err, Message: err.Error()}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{statusCode: http.StatusUnauthorized, cause: err, Message: "invalid credentials"}
}

func ErrNotFound(err error) *Err {
	return &Err{statusCode: http.StatusNotFound, cause: err, Message: err.Error()}
}

func ErrInternalServerError(err error) *Err {
	return &Err{statusCode: http.StatusInternalServerError, cause: err, Message: "internal server error"}
}

// RenderErr writes the error response and aborts the chain. Internal causes
// are logged with the request id, never leaked to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.statusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.cause))
	}

	ctx.AbortWithStatusJSON(e.statusCode, e)
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RunResponse mirrors domain.RunSummary for the cron run endpoint.
type RunResponse struct {
	Checked int                     `json:"checked"`
	Results []domain.ReminderResult `json:"results"`
}

// EligibleResponse is the read-only selector output for an external sender.
type EligibleResponse struct {
	Checked int                     `json:"checked"`
	Tickets []domain.ReminderTicket `json:"tickets"`
}
