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

	"github.com/stewardhq/steward/internal/id"
	"github.com/stewardhq/steward/internal/rbac"
)

// RoleRepository implements rbac.RoleRepository
type RoleRepository struct {
	db *DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *rbac.Role) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO roles (id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		role.ID, role.Name, role.Level, permissionStrings(role.Permissions),
		role.AllowedPages, role.IsSystem, role.Description, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert role: %w", err)
	}

	role.CreatedAt = now
	role.UpdatedAt = now
	return nil
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, roleID string) (*rbac.Role, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`, roleID))
}

// GetByName retrieves a role by its unique name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*rbac.Role, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at
		FROM roles
		WHERE name = $1
	`, name))
}

// List retrieves all roles ordered by descending level
func (r *RoleRepository) List(ctx context.Context) ([]*rbac.Role, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at
		FROM roles
		ORDER BY level DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []*rbac.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// UpdateAllowedPages replaces the role's allowed-page set
func (r *RoleRepository) UpdateAllowedPages(ctx context.Context, roleID string, pages []string) (*rbac.Role, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		UPDATE roles
		SET allowed_pages = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at
	`, roleID, pages, time.Now()))
}

// Delete removes a role
func (r *RoleRepository) Delete(ctx context.Context, roleID string) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1 AND NOT is_system`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rbac.ErrRoleNotFound
	}
	return nil
}

// Seed inserts the system role hierarchy, skipping roles that already exist.
func (r *RoleRepository) Seed(ctx context.Context, defs []rbac.SystemRoleDef) error {
	now := time.Now()
	for _, def := range defs {
		_, err := r.db.pool.Exec(ctx, `
			INSERT INTO roles (id, name, level, permissions, allowed_pages, is_system, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $7)
			ON CONFLICT (name) DO NOTHING
		`,
			id.New(), def.Name, def.Level, permissionStrings(def.Permissions),
			def.AllowedPages, def.Description, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed role %s: %w", def.Name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RoleRepository) scanOne(row pgx.Row) (*rbac.Role, error) {
	role, err := scanRole(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, rbac.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func scanRole(row rowScanner) (*rbac.Role, error) {
	var role rbac.Role
	var perms []string
	if err := row.Scan(
		&role.ID, &role.Name, &role.Level, &perms, &role.AllowedPages,
		&role.IsSystem, &role.Description, &role.CreatedAt, &role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	role.Permissions = make([]rbac.Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = rbac.Permission(p)
	}
	return &role, nil
}

func permissionStrings(perms []rbac.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
