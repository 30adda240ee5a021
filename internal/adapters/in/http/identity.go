package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token body issued by the identity provider. The subject is the
// actor id.
type Claims struct {
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity verifies HS256 tokens and turns them into actors.
type Identity struct {
	secret []byte
}

func NewIdentity(secret string) (*Identity, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Identity{secret: []byte(secret)}, nil
}

// Sign issues a token for actor. It is used by tests and by the tracking CLI in
// development setups.
func (i *Identity) Sign(actor kernel.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(actor.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if r := actor.RestaurantID(); r != nil {
		claims.RestaurantID = r.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Authenticate parses a token. The system role is never accepted from outside.
func (i *Identity) Authenticate(token string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	role := kernel.Role(claims.Role)
	if role == kernel.RoleSystem {
		return kernel.Actor{}, ErrInvalidToken
	}
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, errors.Join(ErrInvalidToken, err)
	}
	var restaurantID *kernel.UUID
	if claims.RestaurantID != "" {
		r, err := kernel.UUIDFromString(claims.RestaurantID)
		if err != nil {
			return kernel.Actor{}, errors.Join(ErrInvalidToken, err)
		}
		restaurantID = &r
	}

	actor, err := kernel.NewActor(id, role, restaurantID)
	if err != nil {
		return kernel.Actor{}, errors.Join(ErrInvalidToken, err)
	}
	return actor, nil
}

// Middleware reads the token from the Authorization header or, for browser
// websocket clients that cannot set headers, from the token query parameter.
func (i *Identity) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := ctx.QueryParam("token")
			if h := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: ErrMissingToken.Error(),
				})
			}

			actor, err := i.Authenticate(token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: ErrInvalidToken.Error(),
				})
			}
			ctx.Set(actorContextKey, actor)
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) kernel.Actor {
	actor, _ := ctx.Get(actorContextKey).(kernel.Actor)
	return actor
}
