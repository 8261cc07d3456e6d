package service

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"reservasalas/internal/booking"
	"reservasalas/internal/db"
	"reservasalas/internal/repository"
)

type AuthService interface {
	Login(email, password string) (string, *db.User, error)
	CreateUser(email, nombre, password, rol string) error
}

// SessionClaims is everything the middleware needs to rebuild the acting
// user without touching the database on every request.
type SessionClaims struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

type authService struct {
	repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(email, password string) (string, *db.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", nil, errors.New("JWT_SECRET not set")
	}

	claims := SessionClaims{
		Email:  user.Email,
		Nombre: user.Nombre,
		Rol:    user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(8 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (s *authService) CreateUser(email, nombre, password, rol string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	if rol != booking.RoleAdmin {
		rol = booking.RoleUser
	}
	return s.repo.CreateUser(email, nombre, password, rol)
}
