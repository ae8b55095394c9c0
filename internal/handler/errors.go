package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/middleware"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Persistence failures deliberately surface a generic message; the
// actionable detail lives in the audit/error record only.
func respondError(c *gin.Context, err error) {
	var (
		validation *apperr.ValidationError
		forbidden  *apperr.AuthorizationError
		conflict   *apperr.StateConflictError
		notFound   *apperr.NotFoundError
		duplicate  *apperr.DuplicateError
		persist    *apperr.PersistenceError
		authn      *apperr.AuthenticationError
	)

	switch {
	case errors.As(err, &validation):
		utils.ErrorResponse(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &forbidden):
		utils.ErrorResponse(c, http.StatusForbidden, forbidden.Error())
	case errors.As(err, &conflict):
		utils.ErrorResponse(c, http.StatusConflict, conflict.Error())
	case errors.As(err, &notFound):
		utils.ErrorResponse(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &duplicate):
		utils.ErrorResponse(c, http.StatusConflict, duplicate.Error())
	case errors.As(err, &authn):
		utils.ErrorResponse(c, http.StatusUnauthorized, authn.Error())
	case errors.As(err, &persist):
		utils.ErrorResponse(c, http.StatusInternalServerError, "An internal error occurred")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "An internal error occurred")
	}
}

// bindError reports a request binding failure. Validator field errors
// are listed per field; anything else gets the generic message.
func bindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag()))
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+strings.Join(msgs, "; "))
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
}

// actorID returns the authenticated user's id from the request context.
func actorID(c *gin.Context) uint {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(uint)
	return userID
}
