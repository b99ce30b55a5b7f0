package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OriginKey is the context key for the requesting origin's id.
	OriginKey contextKey = "origin"

	// OriginCookie names the cookie that identifies a browser.
	OriginCookie = "ns_origin"
	// OriginHeader carries the origin id on RPC calls.
	OriginHeader = "X-Party-Origin"

	originMaxAge = 365 * 24 * time.Hour
)

var (
	ErrMissingOrigin = errors.New("origin header required")
	ErrInvalidOrigin = errors.New("origin must be a UUID")
)

// GetOrigin extracts the origin id from the context.
// Returns empty string if not found.
func GetOrigin(ctx context.Context) string {
	origin, _ := ctx.Value(OriginKey).(string)
	return origin
}

// WithOrigin returns a context carrying origin.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, OriginKey, origin)
}

func validOrigin(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

// Origin identifies the browser behind each page request. A request without a usable
// ns_origin cookie is given a new id, which also starts it with an empty store.
func Origin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var origin string
		if c, err := r.Cookie(OriginCookie); err == nil && validOrigin(c.Value) {
			origin = c.Value
		} else {
			origin = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     OriginCookie,
				Value:    origin,
				Path:     "/",
				MaxAge:   int(originMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithOrigin(r.Context(), origin)))
	})
}

// RequireOrigin returns an interceptor that reads the origin id from the X-Party-Origin
// header and adds it to the request context.
func RequireOrigin() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			origin := req.Header().Get(OriginHeader)
			if origin == "" {
				return nil, connect.NewError(connect.CodeInvalidArgument, ErrMissingOrigin)
			}
			if !validOrigin(origin) {
				return nil, connect.NewError(connect.CodeInvalidArgument, ErrInvalidOrigin)
			}
			return next(WithOrigin(ctx, origin), req)
		}
	}
}
