package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/service"
)

type CommentHandler struct {
	comments service.CommentService
	logger   *logger.Logger
}

func NewCommentHandler(comments service.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comment := rg.Group("/comment")
	comment.GET("", h.GetAll)
	comment.GET("/:id", h.GetByID)
	comment.POST("/:stockId", h.Create)
	comment.PUT("/:id", h.Update)
	comment.DELETE("/:id", h.Delete)
}

// GetAll godoc
// @Summary List comments
// @Tags comment
// @Produce  json
// @Param   symbol        query  string  false  "Only comments on this stock"
// @Param   isDescending  query  bool    false  "Newest first"
// @Success 200 {array} dto.CommentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security Bearer
// @Router /comment [get]
func (h *CommentHandler) GetAll(c *gin.Context) {
	var query dto.CommentQuery
	if !bindQuery(c, &query) {
		return
	}

	comments, err := h.comments.GetAll(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetByID godoc
// @Summary Get a comment by ID
// @Tags comment
// @Produce  json
// @Param   id  path  int  true  "Comment ID"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /comment/{id} [get]
func (h *CommentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create godoc
// @Summary Comment on a stock
// @Description Post a comment on the stock named in the path. A missing stock answers 400.
// @Tags comment
// @Accept  json
// @Produce  json
// @Param   stockId  path  int                       true  "Stock ID"
// @Param   comment  body  dto.CreateCommentRequest  true  "Comment to post"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security Bearer
// @Router /comment/{stockId} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	stockID, ok := parseID(c, "stockId")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), p, stockID, req)
	if errors.Is(err, service.ErrNotFound) {
		respondMessage(c, http.StatusBadRequest, "Stock does not exist")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", "/api/comment/"+uintString(comment.ID))
	c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit a comment
// @Tags comment
// @Accept  json
// @Produce  json
// @Param   id       path  int                       true  "Comment ID"
// @Param   comment  body  dto.UpdateCommentRequest  true  "New title and content"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /comment/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, req)
	if errors.Is(err, service.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Description Remove the comment and echo it back
// @Tags comment
// @Produce  json
// @Param   id  path  int  true  "Comment ID"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security Bearer
// @Router /comment/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		respondMessage(c, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}
