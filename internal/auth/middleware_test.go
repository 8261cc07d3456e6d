package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	"reservasalas/internal/service"
)

const testSecret = "clave-de-prueba"

func signToken(t *testing.T, userID int, rol string, expiresIn time.Duration) string {
	t.Helper()
	claims := service.SessionClaims{
		Email:  "ana@uni.cl",
		Nombre: "Ana",
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(middleware func(http.Handler) http.Handler, token string) (*httptest.ResponseRecorder, *db.User) {
	var got *db.User
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, got
}

func TestRequireUserValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token := signToken(t, 7, booking.RoleUser, time.Hour)
	rec, user := doRequest(RequireUser, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "ana@uni.cl", user.Email)
	assert.Equal(t, booking.RoleUser, user.Rol)
}

func TestRequireUserRejectsMissingAndExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	rec, _ := doRequest(RequireUser, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := signToken(t, 7, booking.RoleUser, -time.Minute)
	rec, _ = doRequest(RequireUser, expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "otra-clave")
	token := signToken(t, 7, booking.RoleUser, time.Hour)
	rec, _ := doRequest(RequireUser, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	userToken := signToken(t, 7, booking.RoleUser, time.Hour)
	rec, _ := doRequest(RequireAdmin, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := signToken(t, 1, booking.RoleAdmin, time.Hour)
	rec, user := doRequest(RequireAdmin, adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, booking.RoleAdmin, user.Rol)
}
