package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1/response"
)

// CronSecretHeader authenticates the scheduler-driven endpoints.
const CronSecretHeader = "X-Cron-Secret"

var errInvalidCronSecret = errors.New("invalid cron secret")

// RequireCronSecret gates a route group on a shared secret header. An empty
// configured secret locks the group entirely rather than opening it up.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		provided := ctx.GetHeader(CronSecretHeader)

		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidCronSecret))

			return
		}

		ctx.Next()
	}
}
