package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/middleware"
)

var errInvalidID = errors.New("invalid id")

func currentUserID(ctx *gin.Context) uint {
	return ctx.GetUint(middleware.ContextKeyUserID)
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}

	return uint(id), nil
}
