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
	"context"
	"fmt"
	"os"

	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/rbac"
)

const (
	EnvBootstrapAdminEmail    = "STEWARD_BOOTSTRAP_ADMIN_EMAIL"
	EnvBootstrapAdminPassword = "STEWARD_BOOTSTRAP_ADMIN_PASSWORD"
)

// BootstrapService seeds the first Super Admin account. Every later role grant
// flows through the authorization engine, which requires an actor that already
// outranks the target; this is the one place a role is granted without one.
type BootstrapService struct {
	identityService *Service
	roleRepo        rbac.RoleRepository
	auditLogger     audit.Logger
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(identityService *Service, roleRepo rbac.RoleRepository, auditLogger audit.Logger) *BootstrapService {
	return &BootstrapService{
		identityService: identityService,
		roleRepo:        roleRepo,
		auditLogger:     auditLogger,
	}
}

// Bootstrap creates the initial Super Admin when the env vars are set and no
// account holds the apex role yet. Safe to run on every startup.
func (s *BootstrapService) Bootstrap(ctx context.Context) error {
	email := os.Getenv(EnvBootstrapAdminEmail)
	password := os.Getenv(EnvBootstrapAdminPassword)

	if email == "" {
		return nil
	}

	apex, err := s.roleRepo.GetByName(ctx, rbac.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("apex role not seeded, run migrations first: %w", err)
	}

	count, err := s.identityService.repo.CountWithRole(ctx, apex.ID)
	if err != nil {
		return fmt.Errorf("failed to check for existing super admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := s.identityService.repo.GetByEmail(ctx, email)
	if err != nil {
		if password == "" {
			return fmt.Errorf("bootstrap user %s does not exist and %s is not set", email, EnvBootstrapAdminPassword)
		}
		user, err = s.identityService.Register(ctx, email, "admin", password, "Super", "Admin")
		if err != nil {
			return fmt.Errorf("failed to create bootstrap admin: %w", err)
		}
	}

	if _, err := s.identityService.repo.UpdateRole(ctx, user.ID, &apex.ID, nil); err != nil {
		return fmt.Errorf("failed to grant super admin role during bootstrap: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleAssigned,
		ActorID:  "system:bootstrap",
		Resource: user.ID,
		Metadata: map[string]any{
			audit.AttrEmail:  email,
			audit.AttrRoleID: apex.ID,
		},
	})

	return nil
}
