package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
	"storefront/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       model.NewID(),
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Role:     model.RoleAdmin,
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Fullname, claims.Fullname)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.TTL().Seconds(), 5)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := testUser()

	otherSecret, err := NewJWTService("other-secret", time.Hour).GenerateAccessToken(user)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	noSubjectToken, err := noSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", otherSecret},
		{"expired", expiredToken},
		{"missing user id", noSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestNewJWTService_DefaultExpiry(t *testing.T) {
	assert.Equal(t, DefaultTokenExpiry, NewJWTService("s", 0).Expiry())
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ClaimsFromContext(ctx))

	claims := &Claims{UserID: "u1", Role: string(model.RoleCustomer)}
	got := ClaimsFromContext(WithClaims(ctx, claims))
	assert.Same(t, claims, got)
	assert.False(t, got.IsAdmin())

	var none *Claims
	assert.False(t, none.IsAdmin())
}

func TestTokenStore_InProcess(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		tokenID string
		ttl     time.Duration
		revoked bool
	}{
		{name: "revoked until expiry", tokenID: "live", ttl: time.Minute, revoked: true},
		{name: "expired token skipped", tokenID: "stale", ttl: -time.Second, revoked: false},
		{name: "empty id ignored", tokenID: "", ttl: time.Minute, revoked: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, store.BlacklistAccessToken(ctx, tt.tokenID, tt.ttl))
			revoked, err := store.IsAccessTokenBlacklisted(ctx, tt.tokenID)
			assert.NoError(t, err)
			assert.Equal(t, tt.revoked, revoked)
		})
	}

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "never-seen")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_RevocationFailsWhenRedisDown(t *testing.T) {
	// nothing listens on port 1
	client := cache.New("127.0.0.1:1", "", 0)
	defer client.Close()
	store := NewTokenStore(client)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := store.BlacklistAccessToken(ctx, "jti-1", time.Minute)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "revoke token jti-1")
}
