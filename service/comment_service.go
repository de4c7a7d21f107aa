package service

import (
	"context"
	"fmt"
	"time"

	"stocks-api/auth"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/models"
	"stocks-api/repository"
)

// CommentService defines the interface for comments attached to stocks.
type CommentService interface {
	GetAll(ctx context.Context, query dto.CommentQuery) ([]dto.CommentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.CommentResponse, error)
	Create(ctx context.Context, principal auth.Principal, stockID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, id uint) (*dto.CommentResponse, error)
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	stockRepo repository.StockRepository,
	logger *logger.Logger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		stockRepo:   stockRepo,
		logger:      logger,
		now:         time.Now,
	}
}

type commentService struct {
	commentRepo repository.CommentRepository
	stockRepo   repository.StockRepository
	logger      *logger.Logger
	now         func() time.Time
}

func (s *commentService) GetAll(ctx context.Context, query dto.CommentQuery) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.FindAll(ctx, query)
	if err != nil {
		return nil, storeError(err, "list comments")
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, mapToCommentResponse(&comments[i]))
	}
	return responses, nil
}

func (s *commentService) GetByID(ctx context.Context, id uint) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("comment %d", id))
	}
	resp := mapToCommentResponse(comment)
	return &resp, nil
}

// Create attaches a new comment by principal to the stock. It fails with
// ErrNotFound when the stock does not exist.
func (s *commentService) Create(ctx context.Context, principal auth.Principal, stockID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	exists, err := s.stockRepo.Exists(ctx, stockID)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("stock %d", stockID))
	}
	if !exists {
		return nil, fmt.Errorf("stock %d: %w", stockID, ErrNotFound)
	}

	comment := &models.Comment{
		Title:     req.Title,
		Content:   req.Content,
		CreatedOn: s.now().UTC(),
		StockID:   stockID,
		AppUserID: principal.UserID,
		AppUser:   &models.AppUser{ID: principal.UserID, UserName: principal.UserName},
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", logger.ErrorField(err), logger.Field("stock_id", stockID))
		return nil, storeError(err, "create comment")
	}

	s.logger.Debug("Comment created",
		logger.Field("comment_id", comment.ID),
		logger.Field("stock_id", stockID),
		logger.StringField("user", principal.UserName),
	)
	resp := mapToCommentResponse(comment)
	return &resp, nil
}

// Update replaces the title and content of an existing comment.
func (s *commentService) Update(ctx context.Context, id uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("comment %d", id))
	}

	comment.Title = req.Title
	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, storeError(err, fmt.Sprintf("update comment %d", id))
	}

	resp := mapToCommentResponse(comment)
	return &resp, nil
}

// Delete removes the comment and returns it as it was.
func (s *commentService) Delete(ctx context.Context, id uint) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("delete comment %d", id))
	}
	resp := mapToCommentResponse(comment)
	return &resp, nil
}
