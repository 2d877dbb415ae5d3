package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"miniboard/models"
	"miniboard/utils"
)

// respondError maps a service error onto the HTTP status table. Store
// failures are logged with their cause but surface as a generic message.
func respondError(ctx *gin.Context, err error) {
	// errors.As, not a type assertion: KindOf walks the chain, so a wrapped
	// AppError must resolve here too. Only the default branch can see a nil
	// appErr because KindOf falls back to KindStore for foreign errors.
	var appErr *models.AppError
	errors.As(err, &appErr)

	switch models.KindOf(err) {
	case models.KindValidation:
		utils.Error(ctx, http.StatusBadRequest, 40001, appErr.Message)
	case models.KindConflict:
		utils.Error(ctx, http.StatusConflict, 40901, appErr.Message)
	case models.KindAuthentication:
		utils.Error(ctx, http.StatusUnauthorized, 40106, appErr.Message)
	case models.KindAuthorization:
		utils.Error(ctx, http.StatusForbidden, 40301, appErr.Message)
	case models.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40401, appErr.Message)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("request failed", "path", ctx.Request.URL.Path, "error", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "something went wrong")
	}
}
