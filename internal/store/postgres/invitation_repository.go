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

	"github.com/stewardhq/steward/internal/identity"
)

// InvitationRepository implements identity.InvitationRepository
type InvitationRepository struct {
	db *DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, inv *identity.Invitation) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO invitations (id, email, role_id, company_ids, inviter_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, inv.ID, inv.Email, inv.RoleID, inv.CompanyIDs, inv.InviterID, inv.Status, now)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}

	inv.CreatedAt = now
	return nil
}

// GetByEmail retrieves the pending invitation for an email
func (r *InvitationRepository) GetByEmail(ctx context.Context, email string) (*identity.Invitation, error) {
	inv, err := scanInvitation(r.db.pool.QueryRow(ctx, `
		SELECT id, email, role_id, company_ids, inviter_id, status, created_at
		FROM invitations
		WHERE email = $1
	`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, identity.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// List retrieves all pending invitations
func (r *InvitationRepository) List(ctx context.Context) ([]*identity.Invitation, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, email, role_id, company_ids, inviter_id, status, created_at
		FROM invitations
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*identity.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// DeleteByEmail removes the invitation for an email. Returns true only when a
// row was actually deleted.
func (r *InvitationRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM invitations WHERE email = $1`, email)
	if err != nil {
		return false, fmt.Errorf("failed to delete invitation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanInvitation(row rowScanner) (*identity.Invitation, error) {
	var inv identity.Invitation
	if err := row.Scan(
		&inv.ID, &inv.Email, &inv.RoleID, &inv.CompanyIDs,
		&inv.InviterID, &inv.Status, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}
