/*
 * Copyright 2026 Pulseboard Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package auth provides local administrator authentication with JWT tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
)

var (
	errInvalidCreds = errors.New("invalid credentials")
	errInvalidToken = errors.New("invalid token")
)

const defaultJWTExpiration = 24 * time.Hour

type Auth struct {
	config *models.AuthConfig
	logger logger.Logger
}

func NewAuth(config *models.AuthConfig, log logger.Logger) *Auth {
	return &Auth{config: config, logger: log}
}

func (a *Auth) LoginLocal(_ context.Context, username, password string) (*models.Token, error) {
	storedHash, ok := a.config.LocalUsers[username]
	if !ok {
		// Compare against a throwaway hash so a missing user costs the
		// same as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4P1iFqDhM3a5mFyRkds/5ZbLAW2"), []byte(password))

		return nil, errInvalidCreds
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		a.logger.Warn().
			Str("username", username).
			Msg("Failed local login attempt")

		return nil, errInvalidCreds
	}

	expiration := time.Duration(a.config.JWTExpiration)
	if expiration <= 0 {
		expiration = defaultJWTExpiration
	}

	signed, expiresAt, err := generateToken(username, a.config.JWTSecret, expiration)
	if err != nil {
		return nil, err
	}

	return &models.Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

func (a *Auth) VerifyToken(_ context.Context, token string) (*models.User, error) {
	claims, err := parseToken(token, a.config.JWTSecret)
	if err != nil {
		return nil, errInvalidToken
	}

	return &models.User{
		ID:       generateUserID(claims.Username),
		Name:     claims.Username,
		Provider: "local",
	}, nil
}

// generateUserID derives a stable id from the username.
func generateUserID(username string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("pulseboard/user/"+username)).String()
}
