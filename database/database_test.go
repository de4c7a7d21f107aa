package database_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocks-api/database"
	"stocks-api/database/dbtest"
	"stocks-api/models"
)

func stocks(symbols ...string) []models.Stock {
	out := make([]models.Stock, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, models.Stock{
			Symbol:      s,
			CompanyName: s + " Inc",
			Purchase:    decimal.NewFromInt(100),
			LastDiv:     decimal.RequireFromString("1.25"),
			Industry:    "Tech",
			MarketCap:   1000,
		})
	}
	return out
}

func TestCreateInBatches(t *testing.T) {
	db := dbtest.New(t)

	err := database.CreateInBatches(context.Background(), db, stocks("A", "B", "C", "D", "E"), 2)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Stock{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestCreateInBatchesRollsBackOnFailure(t *testing.T) {
	db := dbtest.New(t)

	// the duplicate symbol in the second chunk violates the unique index
	err := database.CreateInBatches(context.Background(), db, stocks("A", "B", "C", "A"), 2)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Stock{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateInBatchesValidatesInput(t *testing.T) {
	db := dbtest.New(t)

	assert.ErrorIs(t, database.CreateInBatches(context.Background(), db, stocks("A"), 0), database.ErrInvalidBatchSize)
	assert.ErrorIs(t, database.CreateInBatches(context.Background(), db, models.Stock{}, 10), database.ErrInvalidData)
	assert.NoError(t, database.CreateInBatches(context.Background(), db, []models.Stock{}, 10))
}

func TestDeletingStockCascadesComments(t *testing.T) {
	db := dbtest.New(t)

	user := models.AppUser{UserName: "jane", Email: "jane@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	stock := stocks("MSFT")[0]
	require.NoError(t, db.Create(&stock).Error)
	require.NoError(t, db.Create(&models.Comment{Title: "Great", Content: "Buy it now", StockID: stock.ID, AppUserID: user.ID}).Error)

	require.NoError(t, db.Delete(&models.Stock{}, stock.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("stock_id = ?", stock.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
