package dto

import "time"

// CommentQuery narrows the comment listing to one stock and orders it by
// creation time.
type CommentQuery struct {
	Symbol       string `form:"symbol"`
	IsDescending bool   `form:"isDescending"`
}

type CreateCommentRequest struct {
	Title   string `json:"title" binding:"required,min=5,max=200"`
	Content string `json:"content" binding:"required,min=5,max=500"`
}

func (r CreateCommentRequest) Validate() FieldErrors {
	return validateStruct(r)
}

type UpdateCommentRequest struct {
	Title   string `json:"title" binding:"required,min=5,max=200"`
	Content string `json:"content" binding:"required,min=5,max=500"`
}

func (r UpdateCommentRequest) Validate() FieldErrors {
	return validateStruct(r)
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedOn time.Time `json:"createdOn"`
	CreatedBy string    `json:"createdBy"`
	StockID   uint      `json:"stockId"`
}
