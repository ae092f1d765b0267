package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	apperr "storefront/internal/errors"
)

// contextKey is where echo-jwt stores the parsed claims.
const contextKey = "user"

var errTokenRevoked = errors.New("token revoked")

// Authenticator builds the bearer token middlewares.
type Authenticator struct {
	jwt    *auth.JWTService
	tokens auth.TokenStoreInterface
}

// NewAuthenticator creates the JWT middleware factory.
func NewAuthenticator(jwtService *auth.JWTService, tokens auth.TokenStoreInterface) *Authenticator {
	return &Authenticator{jwt: jwtService, tokens: tokens}
}

// parseToken validates the signature and expiry, then rejects revoked tokens.
func (a *Authenticator) parseToken(c echo.Context, raw string) (interface{}, error) {
	claims, err := a.jwt.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := a.tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errTokenRevoked
	}
	return claims, nil
}

// storeClaims copies the parsed claims into the request context so services
// and the GraphQL resolvers can read them without echo.
func storeClaims(c echo.Context) {
	claims, ok := c.Get(contextKey).(*auth.Claims)
	if !ok {
		return
	}
	c.SetRequest(c.Request().WithContext(auth.WithClaims(c.Request().Context(), claims)))
}

func unauthorized() error {
	httpErr := apperr.MapErrorToHTTP(apperr.ErrUnauthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// RequireAuth rejects requests without a valid, unrevoked bearer token with 401.
func (a *Authenticator) RequireAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     contextKey,
		ParseTokenFunc: a.parseToken,
		SuccessHandler: storeClaims,
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized()
		},
	})
}

// OptionalAuth attaches the caller when a valid token is presented and lets
// everyone else through as a guest.
func (a *Authenticator) OptionalAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:     contextKey,
		ParseTokenFunc: a.parseToken,
		SuccessHandler: storeClaims,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := auth.ClaimsFromContext(c.Request().Context())
		if claims == nil {
			return unauthorized()
		}
		if !claims.IsAdmin() {
			httpErr := apperr.MapErrorToHTTP(apperr.ErrForbidden)
			return echo.NewHTTPError(http.StatusForbidden, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}
