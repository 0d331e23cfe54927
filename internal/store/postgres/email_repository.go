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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stewardhq/steward/internal/support"
)

// EmailRepository implements support.EmailRepository
type EmailRepository struct {
	db *DB
}

// NewEmailRepository creates a new support email repository
func NewEmailRepository(db *DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// Create stores an inbound email
func (r *EmailRepository) Create(ctx context.Context, e *support.Email) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO support_emails (id, from_addr, subject, message, is_read, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.From, e.Subject, e.Message, e.IsRead, now)
	if err != nil {
		return fmt.Errorf("failed to insert support email: %w", err)
	}

	e.ReceivedAt = now
	return nil
}

// GetByID retrieves an email by ID
func (r *EmailRepository) GetByID(ctx context.Context, id string) (*support.Email, error) {
	var e support.Email
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, from_addr, subject, message, is_read, received_at
		FROM support_emails
		WHERE id = $1
	`, id).Scan(&e.ID, &e.From, &e.Subject, &e.Message, &e.IsRead, &e.ReceivedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, support.ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to get support email: %w", err)
	}
	return &e, nil
}

// List retrieves all emails, newest first
func (r *EmailRepository) List(ctx context.Context) ([]*support.Email, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, from_addr, subject, message, is_read, received_at
		FROM support_emails
		ORDER BY received_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query support emails: %w", err)
	}
	defer rows.Close()

	var emails []*support.Email
	for rows.Next() {
		var e support.Email
		if err := rows.Scan(&e.ID, &e.From, &e.Subject, &e.Message, &e.IsRead, &e.ReceivedAt); err != nil {
			return nil, err
		}
		emails = append(emails, &e)
	}
	return emails, rows.Err()
}

// MarkRead flags an email as read
func (r *EmailRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE support_emails SET is_read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark support email read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return support.ErrEmailNotFound
	}
	return nil
}
