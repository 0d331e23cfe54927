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

package rbac

import (
	"context"
	"fmt"
	"time"

	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/id"
)

// Registry is the source of truth for roles. It validates structural
// invariants (known pages, known permissions, the custom-role level cap) but
// performs no authorization itself; callers must have already cleared the
// mutation with the authorization engine.
type Registry struct {
	repo        RoleRepository
	auditLogger audit.Logger
}

// NewRegistry creates a new role registry
func NewRegistry(repo RoleRepository, auditLogger audit.Logger) *Registry {
	return &Registry{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// GetRole retrieves a role by ID
func (g *Registry) GetRole(ctx context.Context, roleID string) (*Role, error) {
	return g.repo.GetByID(ctx, roleID)
}

// ListRoles retrieves all roles ordered by descending level
func (g *Registry) ListRoles(ctx context.Context) ([]*Role, error) {
	roles, err := g.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// CreateRole creates a custom role. Custom roles are capped at
// MaxCustomRoleLevel; only seeding may create roles above it.
func (g *Registry) CreateRole(ctx context.Context, actorID, name string, level int, perms []Permission, pages []string, description string) (*Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if level <= 0 {
		return nil, fmt.Errorf("role level must be positive")
	}
	if level > MaxCustomRoleLevel {
		return nil, ErrLevelTooHigh
	}
	for _, p := range perms {
		if !KnownPermission(p) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPermission, p)
		}
	}
	if err := validatePages(pages); err != nil {
		return nil, err
	}

	if _, err := g.repo.GetByName(ctx, name); err == nil {
		return nil, ErrRoleAlreadyExists
	}

	now := time.Now()
	role := &Role{
		ID:           id.New(),
		Name:         name,
		Level:        level,
		Permissions:  perms,
		AllowedPages: pages,
		IsSystem:     false,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := g.repo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleCreated,
		ActorID:  actorID,
		Resource: role.ID,
		Metadata: map[string]any{"name": name, "level": level},
	})

	return role, nil
}

// UpdateAllowedPages replaces a role's allowed-page set. The operation is an
// idempotent set replacement; concurrent updates race at storage granularity
// and last writer wins. Unknown page paths fail validation rather than being
// stored.
func (g *Registry) UpdateAllowedPages(ctx context.Context, actorID, roleID string, pages []string) (*Role, error) {
	if err := validatePages(pages); err != nil {
		return nil, err
	}

	role, err := g.repo.UpdateAllowedPages(ctx, roleID, pages)
	if err != nil {
		return nil, err
	}

	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRolePagesChanged,
		ActorID:  actorID,
		Resource: roleID,
		Metadata: map[string]any{"allowed_pages": pages},
	})

	return role, nil
}

// DeleteRole deletes a custom role. System roles are seeded and permanent.
func (g *Registry) DeleteRole(ctx context.Context, actorID, roleID string) error {
	role, err := g.repo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return ErrRoleIsSystem
	}

	if err := g.repo.Delete(ctx, roleID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	g.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleDeleted,
		ActorID:  actorID,
		Resource: roleID,
		Metadata: map[string]any{"name": role.Name},
	})

	return nil
}

func validatePages(pages []string) error {
	for _, path := range pages {
		if !KnownPage(path) {
			return fmt.Errorf("%w: %s", ErrInvalidPageReference, path)
		}
	}
	return nil
}
