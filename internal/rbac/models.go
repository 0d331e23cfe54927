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
	"errors"
	"time"
)

// Domain errors
var (
	ErrRoleNotFound         = errors.New("role not found")
	ErrRoleAlreadyExists    = errors.New("role already exists")
	ErrRoleIsSystem         = errors.New("system roles cannot be deleted")
	ErrLevelTooHigh         = errors.New("custom role level exceeds the allowed maximum")
	ErrInvalidPageReference = errors.New("page path is not a known admin page")
	ErrInvalidPermission    = errors.New("permission key is not in the catalog")
	ErrForbidden            = errors.New("actor lacks authority for this operation")
	ErrOutOfScope           = errors.New("resource is outside the actor's company scope")
)

// Permission is a key from the permission catalog (e.g. "manage_products").
type Permission string

// PermissionAllAccess is the wildcard permission. A role holding it passes
// every permission check.
const PermissionAllAccess Permission = "all_access"

// MaxCustomRoleLevel caps the level of non-system roles. Only seeded system
// roles may sit above it.
const MaxCustomRoleLevel = 90

// ApexLevel is the level at which the self-assignment exception applies: a
// role at or above it may assign any role, including its own tier.
const ApexLevel = 100

// Role is an authority tier. Level strictly orders authority: management and
// assignment decisions compare levels, never identities.
type Role struct {
	ID           string
	Name         string
	Level        int
	Permissions  []Permission
	AllowedPages []string
	IsSystem     bool
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission reports whether the role grants the permission, either
// directly or via the all_access wildcard.
func (r *Role) HasPermission(p Permission) bool {
	if r == nil {
		return false
	}
	for _, held := range r.Permissions {
		if held == PermissionAllAccess || held == p {
			return true
		}
	}
	return false
}

// PermissionInfo is display metadata for a catalog permission. It is never
// consulted for enforcement.
type PermissionInfo struct {
	Name        string
	Description string
	Category    string
}

// Page is a navigable admin page. The page catalog is compiled in and
// immutable; a role's allowed-page set references it by path.
type Page struct {
	Path        string
	Name        string
	Description string
	Category    string
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// GetByID retrieves a role by ID
	GetByID(ctx context.Context, id string) (*Role, error)

	// GetByName retrieves a role by its unique name
	GetByName(ctx context.Context, name string) (*Role, error)

	// List retrieves all roles ordered by descending level
	List(ctx context.Context) ([]*Role, error)

	// UpdateAllowedPages replaces the role's allowed-page set
	UpdateAllowedPages(ctx context.Context, id string, pages []string) (*Role, error)

	// Delete removes a role
	Delete(ctx context.Context, id string) error
}
