package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

type actorKey struct{}

// Claims is the bearer token payload issued by the users service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator resolves the caller once per request. Services receive the
// resulting actor explicitly and never look the role up again.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.actorFromRequest(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func (a *Authenticator) actorFromRequest(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Actor{}, errors.New("missing bearer token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Actor{}, errors.New("invalid or expired token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Actor{}, errors.New("token subject is not a valid id")
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Actor{}, errors.New("token carries an unknown role")
	}

	return domain.Actor{ID: id, Role: role}, nil
}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// RequireRole rejects callers whose role is not in roles.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || !allowed[actor.Role] {
				writeJSON(w, http.StatusForbidden, errorResponse{
					Error:   string(domain.KindForbidden),
					Message: "your role cannot perform this operation",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
