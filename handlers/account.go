package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/service"
)

type AccountHandler struct {
	accounts service.AccountService
	logger   *logger.Logger
}

func NewAccountHandler(accounts service.AccountService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// RegisterRoutes mounts the account endpoints. limit guards the credential
// checks.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	account := rg.Group("/account")
	account.POST("/register", h.Register)
	account.POST("/login", limit, h.Login)
	account.POST("/refresh", limit, h.Refresh)
	account.POST("/logout", h.Logout)
}

// Register godoc
// @Summary Register an account
// @Description Create a user and return an access and refresh token pair
// @Tags account
// @Accept  json
// @Produce  json
// @Param   account  body    dto.RegisterRequest  true  "Account to create"
// @Success 200 {object} dto.NewUserResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /account/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Log in
// @Tags account
// @Accept  json
// @Produce  json
// @Param   credentials  body    dto.LoginRequest  true  "User name and password"
// @Success 200 {object} dto.NewUserResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /account/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Description Exchange a refresh token for a new token pair. The old refresh token stops working.
// @Tags account
// @Accept  json
// @Produce  json
// @Param   token  body    dto.RefreshRequest  true  "Refresh token"
// @Success 200 {object} dto.NewUserResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /account/refresh [post]
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags account
// @Accept  json
// @Param   token  body    dto.RefreshRequest  true  "Refresh token"
// @Success 204
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /account/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
