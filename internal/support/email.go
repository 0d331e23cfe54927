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

// Package support manages inbound customer support emails.
package support

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stewardhq/steward/internal/id"
)

var ErrEmailNotFound = errors.New("support email not found")

// Email is an inbound support message.
type Email struct {
	ID         string
	From       string
	Subject    string
	Message    string
	IsRead     bool
	ReceivedAt time.Time
}

// EmailRepository defines the interface for support email persistence
type EmailRepository interface {
	Create(ctx context.Context, e *Email) error
	GetByID(ctx context.Context, id string) (*Email, error)
	List(ctx context.Context) ([]*Email, error)
	MarkRead(ctx context.Context, id string) error
}

// Service provides support email business logic
type Service struct {
	repo EmailRepository
}

// NewService creates a new support service
func NewService(repo EmailRepository) *Service {
	return &Service{repo: repo}
}

// List returns all support emails, newest first
func (s *Service) List(ctx context.Context) ([]*Email, error) {
	return s.repo.List(ctx)
}

// Record stores a new inbound email
func (s *Service) Record(ctx context.Context, from, subject, message string) (*Email, error) {
	if from == "" || subject == "" {
		return nil, fmt.Errorf("from and subject are required")
	}
	e := &Email{
		ID:      id.New(),
		From:    from,
		Subject: subject,
		Message: message,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to record support email: %w", err)
	}
	return e, nil
}

// MarkRead flags an email as read
func (s *Service) MarkRead(ctx context.Context, emailID string) error {
	if _, err := s.repo.GetByID(ctx, emailID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, emailID)
}
