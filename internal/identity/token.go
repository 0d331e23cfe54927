// Copyright 2026 The Steward Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InviteTokenIssuer signs and verifies invitation acceptance tokens. The token
// binds the invited email so acceptance cannot be replayed against a different
// address.
type InviteTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewInviteTokenIssuer creates a new invite token issuer
func NewInviteTokenIssuer(secret string, ttl time.Duration) *InviteTokenIssuer {
	return &InviteTokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the invitation.
func (i *InviteTokenIssuer) Issue(invitationID, email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "steward",
		Subject:   email,
		ID:        invitationID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign invite token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the invited email. Any parse, signature,
// or expiry failure maps to ErrInvalidInviteToken.
func (i *InviteTokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidInviteToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidInviteToken
	}
	return claims.Subject, nil
}
