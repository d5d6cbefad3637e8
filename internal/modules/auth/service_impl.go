package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
)

type service struct {
	users  *user.Service
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service signing tokens with the given secret.
func NewService(users *user.Service, secret string, ttl time.Duration) Service {
	return &service{users: users, secret: []byte(secret), ttl: ttl}
}

func (s *service) Login(ctx context.Context, pseudo, password string) (string, error) {
	u, err := s.users.VerifyPassword(ctx, pseudo, password)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   strconv.FormatInt(u.ID(), 10),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
		Id:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
