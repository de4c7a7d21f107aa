package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stocks-api/auth"
	"stocks-api/config"
	"stocks-api/database/dbtest"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/models"
	"stocks-api/repository"
)

func stockRequest(symbol string) dto.CreateStockRequest {
	return dto.CreateStockRequest{
		Symbol:      symbol,
		CompanyName: "Company",
		Purchase:    decimal.RequireFromString("150.456"),
		LastDiv:     decimal.RequireFromString("0.5"),
		Industry:    "Tech",
		MarketCap:   2_000_000,
	}
}

func seedPrincipal(t *testing.T, db *gorm.DB, name string) auth.Principal {
	t.Helper()
	user := models.AppUser{UserName: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	return auth.Principal{UserID: user.ID, UserName: user.UserName}
}

func TestStockServiceCreate(t *testing.T) {
	db := dbtest.New(t)
	svc := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, stockRequest(" aapl "))
	require.NoError(t, err)
	assert.Equal(t, "AAPL", created.Symbol)
	assert.True(t, decimal.RequireFromString("150.46").Equal(created.Purchase))
	assert.Empty(t, created.Comments)

	_, err = svc.Create(ctx, stockRequest("AAPL"))
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.GetBySymbol(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestStockServiceNotFound(t *testing.T) {
	db := dbtest.New(t)
	svc := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBySymbol(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, 42, dto.UpdateStockRequest(stockRequest("NOPE")))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)

	exists, err := svc.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStockServiceUpdate(t *testing.T) {
	db := dbtest.New(t)
	svc := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, stockRequest("MSFT"))
	require.NoError(t, err)

	req := dto.UpdateStockRequest(stockRequest("msft"))
	req.CompanyName = "Microsoft"
	req.MarketCap = 3_000_000
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", updated.Symbol)
	assert.Equal(t, "Microsoft", updated.CompanyName)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), got.MarketCap)
}

func TestStockServiceImport(t *testing.T) {
	db := dbtest.New(t)
	svc := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()

	n, err := svc.Import(ctx, []dto.CreateStockRequest{stockRequest("AAPL"), stockRequest("msft")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := svc.GetAll(ctx, dto.StockQuery{SortBy: "symbol", PageNumber: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "AAPL", all[0].Symbol)
	assert.Equal(t, "MSFT", all[1].Symbol)

	bad := stockRequest("TSLA")
	bad.MarketCap = 0
	_, err = svc.Import(ctx, []dto.CreateStockRequest{stockRequest("GOOG"), bad})
	var fieldErrs dto.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)

	_, err = svc.GetBySymbol(ctx, "GOOG")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPortfolioAddAndList(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	portfolio := NewPortfolioService(repository.NewPortfolioRepository(db), repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()
	user := seedPrincipal(t, db, "jane")

	_, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)

	held, err := portfolio.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, held)

	added, err := portfolio.Add(ctx, user, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", added.Symbol)

	held, err = portfolio.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "AAPL", held[0].Symbol)

	_, err = portfolio.Add(ctx, user, "AAPL")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = portfolio.Add(ctx, user, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPortfolioIsPerUser(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	portfolio := NewPortfolioService(repository.NewPortfolioRepository(db), repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()
	jane := seedPrincipal(t, db, "jane")
	john := seedPrincipal(t, db, "john")

	_, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)

	_, err = portfolio.Add(ctx, jane, "AAPL")
	require.NoError(t, err)
	_, err = portfolio.Add(ctx, john, "AAPL")
	require.NoError(t, err)

	require.NoError(t, portfolio.Remove(ctx, jane, "aapl"))

	held, err := portfolio.List(ctx, jane)
	require.NoError(t, err)
	assert.Empty(t, held)

	held, err = portfolio.List(ctx, john)
	require.NoError(t, err)
	assert.Len(t, held, 1)

	assert.ErrorIs(t, portfolio.Remove(ctx, jane, "AAPL"), ErrNotFound)
}

type racingPortfolioRepo struct {
	repository.PortfolioRepository
}

func (racingPortfolioRepo) FindStocksByUser(context.Context, string) ([]models.Stock, error) {
	return nil, nil
}

func (racingPortfolioRepo) Create(context.Context, *models.Portfolio) error {
	return gorm.ErrDuplicatedKey
}

func TestPortfolioAddDuplicateKeyIsConflict(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	portfolio := NewPortfolioService(racingPortfolioRepo{}, repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()

	_, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)

	_, err = portfolio.Add(ctx, auth.Principal{UserID: "u1", UserName: "jane"}, "AAPL")
	assert.ErrorIs(t, err, ErrConflict)
}

func newCommentService(db *gorm.DB, now time.Time) CommentService {
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewStockRepository(db), logger.NewNop())
	svc.(*commentService).now = func() time.Time { return now }
	return svc
}

func TestCommentCreate(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	comments := newCommentService(db, now)
	ctx := context.Background()
	user := seedPrincipal(t, db, "jane")

	stock, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)

	created, err := comments.Create(ctx, user, stock.ID, dto.CreateCommentRequest{Title: "Great buy", Content: "Solid quarter"})
	require.NoError(t, err)
	assert.Equal(t, "jane", created.CreatedBy)
	assert.Equal(t, stock.ID, created.StockID)
	assert.True(t, now.Equal(created.CreatedOn))
	assert.Equal(t, time.UTC, created.CreatedOn.Location())

	got, err := comments.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", got.CreatedBy)

	withComments, err := stocks.GetByID(ctx, stock.ID)
	require.NoError(t, err)
	require.Len(t, withComments.Comments, 1)
	assert.Equal(t, "Great buy", withComments.Comments[0].Title)
}

func TestCommentCreateForUnknownStock(t *testing.T) {
	db := dbtest.New(t)
	comments := newCommentService(db, time.Now())
	ctx := context.Background()
	user := seedPrincipal(t, db, "jane")

	_, err := comments.Create(ctx, user, 99, dto.CreateCommentRequest{Title: "Great buy", Content: "Solid quarter"})
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	comments := newCommentService(db, time.Now())
	ctx := context.Background()
	user := seedPrincipal(t, db, "jane")

	stock, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)
	created, err := comments.Create(ctx, user, stock.ID, dto.CreateCommentRequest{Title: "Great buy", Content: "Solid quarter"})
	require.NoError(t, err)

	updated, err := comments.Update(ctx, created.ID, dto.UpdateCommentRequest{Title: "Still good", Content: "Holding on"})
	require.NoError(t, err)
	assert.Equal(t, "Still good", updated.Title)
	assert.Equal(t, created.StockID, updated.StockID)

	deleted, err := comments.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still good", deleted.Title)
	assert.Equal(t, "jane", deleted.CreatedBy)

	_, err = comments.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = comments.Update(ctx, created.ID, dto.UpdateCommentRequest{Title: "Again", Content: "Again"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = comments.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentGetAllBySymbol(t *testing.T) {
	db := dbtest.New(t)
	stocks := NewStockService(repository.NewStockRepository(db), logger.NewNop())
	ctx := context.Background()
	user := seedPrincipal(t, db, "jane")

	aapl, err := stocks.Create(ctx, stockRequest("AAPL"))
	require.NoError(t, err)
	msft, err := stocks.Create(ctx, stockRequest("MSFT"))
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := newCommentService(db, base)
	second := newCommentService(db, base.Add(time.Hour))

	_, err = first.Create(ctx, user, aapl.ID, dto.CreateCommentRequest{Title: "Older", Content: "First one"})
	require.NoError(t, err)
	_, err = second.Create(ctx, user, aapl.ID, dto.CreateCommentRequest{Title: "Newer", Content: "Second one"})
	require.NoError(t, err)
	_, err = first.Create(ctx, user, msft.ID, dto.CreateCommentRequest{Title: "Other", Content: "Elsewhere"})
	require.NoError(t, err)

	got, err := first.GetAll(ctx, dto.CommentQuery{Symbol: "aapl", IsDescending: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newer", got[0].Title)
	assert.Equal(t, "Older", got[1].Title)

	all, err := first.GetAll(ctx, dto.CommentQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func newAccountService(db *gorm.DB) (AccountService, *auth.TokenIssuer) {
	issuer := auth.NewTokenIssuer(config.JWT{
		SigningKey: "0123456789abcdef0123456789abcdef0123456789abcdef",
		Issuer:     "stocks-api",
		Audience:   "stocks-api",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	svc := NewAccountService(
		repository.NewUserRepository(db),
		issuer,
		auth.NewMemoryTokenStore(time.Hour),
		time.Hour,
		logger.NewNop(),
	)
	return svc, issuer
}

func TestAccountRegisterAndLogin(t *testing.T) {
	db := dbtest.New(t)
	svc, issuer := newAccountService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{UserName: "jane", Email: "jane@example.com", Password: "Secr3t!"})
	require.NoError(t, err)
	assert.Equal(t, "jane", registered.UserName)
	assert.NotEmpty(t, registered.RefreshToken)

	claims, err := issuer.Parse(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane", claims.GivenName)
	assert.Equal(t, "jane@example.com", claims.Email)

	_, err = svc.Register(ctx, dto.RegisterRequest{UserName: "JANE", Email: "other@example.com", Password: "Secr3t!"})
	assert.ErrorIs(t, err, ErrConflict)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{UserName: "jane", Password: "Secr3t!"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", loggedIn.Email)

	_, err = svc.Login(ctx, dto.LoginRequest{UserName: "jane", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, dto.LoginRequest{UserName: "nobody", Password: "Secr3t!"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountRefreshRotatesToken(t *testing.T) {
	db := dbtest.New(t)
	svc, _ := newAccountService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{UserName: "jane", Email: "jane@example.com", Password: "Secr3t!"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, "jane", refreshed.UserName)

	_, err = svc.Refresh(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, refreshed.RefreshToken))
	_, err = svc.Refresh(ctx, refreshed.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
