package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stocks-api/auth"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/middleware"
	"stocks-api/service"
)

// respondError maps service error kinds onto status codes. Anything it does
// not recognise is logged and hidden behind a 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		log.Error("Request failed",
			logger.ErrorField(err),
			logger.StringField("request_id", middleware.GetRequestID(c)),
			logger.StringField("path", c.FullPath()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// bindJSON decodes and validates the body. Rule violations come back as
// per-field errors, anything else as a plain 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	return bindWith(c, c.ShouldBindJSON(req), "Invalid request body")
}

func bindQuery(c *gin.Context, req interface{}) bool {
	return bindWith(c, c.ShouldBindQuery(req), "Invalid query parameters")
}

func bindWith(c *gin.Context, err error, fallback string) bool {
	if err == nil {
		return true
	}
	if errs, ok := dto.FieldErrorsFrom(err); ok {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: errs})
		return false
	}
	respondMessage(c, http.StatusBadRequest, fallback)
	return false
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondMessage(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized")
	}
	return p, ok
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
