package service

import (
	"stocks-api/dto"
	"stocks-api/models"
)

func mapToStockResponse(stock *models.Stock) dto.StockResponse {
	comments := make([]dto.CommentResponse, 0, len(stock.Comments))
	for i := range stock.Comments {
		comments = append(comments, mapToCommentResponse(&stock.Comments[i]))
	}

	return dto.StockResponse{
		ID:          stock.ID,
		Symbol:      stock.Symbol,
		CompanyName: stock.CompanyName,
		Purchase:    stock.Purchase,
		LastDiv:     stock.LastDiv,
		Industry:    stock.Industry,
		MarketCap:   stock.MarketCap,
		Comments:    comments,
	}
}

func mapToCommentResponse(comment *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		Title:     comment.Title,
		Content:   comment.Content,
		CreatedOn: comment.CreatedOn,
		CreatedBy: comment.AuthorName(),
		StockID:   comment.StockID,
	}
}
