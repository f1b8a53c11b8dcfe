package auth

import (
	"context"

	"github.com/pulseboard/pulseboard/pkg/models"
)

//go:generate mockgen -destination=mock_auth.go -package=auth github.com/pulseboard/pulseboard/pkg/core/auth AuthService

type AuthService interface {
	LoginLocal(ctx context.Context, username, password string) (*models.Token, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}
