package auth

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	"reservasalas/internal/service"
)

const SessionCookieName = "reservasalas_session"

type contextKey struct{}

var userContextKey contextKey

// RequireUser rejects requests without a valid session cookie and puts the
// acting user in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// RequireAdmin is RequireUser plus an administrator role check.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if user.Rol != booking.RoleAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// UserFrom returns the authenticated user placed by the middleware.
func UserFrom(ctx context.Context) (*db.User, bool) {
	user, ok := ctx.Value(userContextKey).(*db.User)
	return user, ok
}

// ContextWithUser injects an acting user directly, bypassing the cookie
// parsing. Handler tests use it to exercise authenticated paths.
func ContextWithUser(ctx context.Context, user *db.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func userFromRequest(r *http.Request) (*db.User, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, false
	}

	var claims service.SessionClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, false
	}
	return &db.User{ID: id, Email: claims.Email, Nombre: claims.Nombre, Rol: claims.Rol}, true
}

// SetSessionCookie installs the signed session token.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
