package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocks-api/config"
	"stocks-api/models"
)

var testJWT = config.JWT{
	SigningKey: "0123456789abcdef0123456789abcdef0123456789abcdef",
	Issuer:     "http://localhost:8080",
	Audience:   "http://localhost:8080",
	AccessTTL:  time.Hour,
	RefreshTTL: 24 * time.Hour,
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testJWT)

	token, err := issuer.CreateToken(&models.AppUser{UserName: "jane", Email: "jane@example.com"})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "jane", claims.GivenName)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, testJWT.Issuer, claims.Issuer)
}

func TestTokenRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(testJWT)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.CreateToken(&models.AppUser{UserName: "jane"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherIssuerAndKey(t *testing.T) {
	token, err := NewTokenIssuer(testJWT).CreateToken(&models.AppUser{UserName: "jane"})
	require.NoError(t, err)

	otherIssuer := testJWT
	otherIssuer.Issuer = "someone-else"
	_, err = NewTokenIssuer(otherIssuer).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherKey := testJWT
	otherKey.SigningKey = "ffffffffffffffffffffffffffffffffffffffffffffffff"
	_, err = NewTokenIssuer(otherKey).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithm(t *testing.T) {
	claims := Claims{
		GivenName: "jane",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testJWT.Issuer,
			Audience:  jwt.ClaimStrings{testJWT.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWT.SigningKey))
	require.NoError(t, err)

	_, err = NewTokenIssuer(testJWT).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore(time.Hour)
	ctx := context.Background()
	token := NewRefreshToken()

	_, err := store.Take(ctx, token)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Save(ctx, token, "user-1", time.Hour))
	userID, err := store.Take(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = store.Take(ctx, token)
	assert.ErrorIs(t, err, ErrTokenNotFound, "a token is redeemed once")

	require.NoError(t, store.Save(ctx, token, "user-1", time.Hour))
	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Take(ctx, token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryTokenStoreConcurrentTake(t *testing.T) {
	store := NewMemoryTokenStore(time.Hour)
	ctx := context.Background()
	token := NewRefreshToken()
	require.NoError(t, store.Save(ctx, token, "user-1", time.Hour))

	var (
		wg       sync.WaitGroup
		redeemed atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, token); err == nil {
				redeemed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), redeemed.Load())
}

func TestMemoryTokenStoreExpires(t *testing.T) {
	store := NewMemoryTokenStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", "user-1", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Take(ctx, "short-lived")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secr3t!")
	require.NoError(t, err)

	assert.NotEqual(t, "Secr3t!", hash)
	assert.True(t, CheckPassword(hash, "Secr3t!"))
	assert.False(t, CheckPassword(hash, "secr3t!"))
}
