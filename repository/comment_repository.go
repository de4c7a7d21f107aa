package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocks-api/dto"
	"stocks-api/models"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	FindAll(ctx context.Context, query dto.CommentQuery) ([]models.Comment, error)
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) (*models.Comment, error)
}

// NewCommentRepository creates a new GORM-based comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

type commentRepository struct {
	db *gorm.DB
}

// FindAll lists comments with their authors, optionally restricted to the
// stock with the given symbol.
func (r *commentRepository) FindAll(ctx context.Context, query dto.CommentQuery) ([]models.Comment, error) {
	tx := r.db.WithContext(ctx).Model(&models.Comment{}).Preload("AppUser")

	if query.Symbol != "" {
		tx = tx.Joins("JOIN stocks ON stocks.id = comments.stock_id").
			Where("stocks.symbol = ?", models.CanonicalSymbol(query.Symbol))
	}

	var comments []models.Comment
	err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Table: "comments", Name: "created_on"}, Desc: query.IsDescending}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "comments", Name: "id"}, Desc: query.IsDescending}).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("AppUser").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// Update writes title and content only; identity, timestamp and associations
// are never touched.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"title":   comment.Title,
			"content": comment.Content,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the comment and returns the row as it was before deletion.
func (r *commentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("AppUser").First(&comment, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
