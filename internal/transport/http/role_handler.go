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

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stewardhq/steward/internal/observability/logger"
	"github.com/stewardhq/steward/internal/rbac"
)

// ListRoles returns every role, highest level first
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.registry.ListRoles(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list roles", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"roles": roleResponses(roles),
	})
}

// ListAssignableRoles returns the roles the caller may hand out
func (h *Handler) ListAssignableRoles(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	roles, err := h.registry.ListRoles(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list roles", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"roles": roleResponses(rbac.AssignableRoles(actor.Role, roles)),
	})
}

// ListPermissions returns the permission catalog with display metadata
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	type permissionEntry struct {
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}

	entries := make([]permissionEntry, 0, len(rbac.PermissionCatalog))
	for key, info := range rbac.PermissionCatalog {
		entries = append(entries, permissionEntry{
			Key:         string(key),
			Name:        info.Name,
			Description: info.Description,
			Category:    info.Category,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"permissions": entries,
	})
}

// GetRole returns a single role
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.registry.GetRole(r.Context(), chi.URLParam(r, "roleID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "role not found")
		return
	}

	respondJSON(w, http.StatusOK, roleResponse(role))
}

// CreateRoleRequest represents a custom role definition
type CreateRoleRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=64"`
	Level        int      `json:"level" validate:"required,min=1"`
	Permissions  []string `json:"permissions" validate:"required,min=1"`
	AllowedPages []string `json:"allowed_pages"`
	Description  string   `json:"description" validate:"max=512"`
}

// CreateRole creates a custom role. Custom roles are capped below the
// system tiers.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req CreateRoleRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	perms := make([]rbac.Permission, len(req.Permissions))
	for i, p := range req.Permissions {
		perms[i] = rbac.Permission(p)
	}

	role, err := h.registry.CreateRole(r.Context(), actor.User.ID, req.Name, req.Level, perms, req.AllowedPages, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrRoleAlreadyExists):
			respondError(w, http.StatusConflict, "a role with this name already exists")
		case errors.Is(err, rbac.ErrLevelTooHigh):
			respondError(w, http.StatusBadRequest, "custom role level exceeds the allowed maximum")
		case errors.Is(err, rbac.ErrInvalidPermission):
			respondError(w, http.StatusBadRequest, "unknown permission")
		case errors.Is(err, rbac.ErrInvalidPageReference):
			respondError(w, http.StatusBadRequest, "unknown page reference")
		default:
			slog.ErrorContext(r.Context(), "failed to create role", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to create role")
		}
		return
	}

	respondJSON(w, http.StatusCreated, roleResponse(role))
}

// UpdateRolePagesRequest represents a page-visibility update
type UpdateRolePagesRequest struct {
	AllowedPages []string `json:"allowed_pages" validate:"required"`
}

// UpdateRolePages replaces a role's allowed-page set
func (h *Handler) UpdateRolePages(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req UpdateRolePagesRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	role, err := h.registry.UpdateAllowedPages(r.Context(), actor.User.ID, chi.URLParam(r, "roleID"), req.AllowedPages)
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrRoleNotFound):
			respondError(w, http.StatusNotFound, "role not found")
		case errors.Is(err, rbac.ErrInvalidPageReference):
			respondError(w, http.StatusBadRequest, "unknown page reference")
		default:
			slog.ErrorContext(r.Context(), "failed to update role pages", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to update role pages")
		}
		return
	}

	respondJSON(w, http.StatusOK, roleResponse(role))
}

// DeleteRole removes a custom role. System roles are immutable.
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	err := h.registry.DeleteRole(r.Context(), actor.User.ID, chi.URLParam(r, "roleID"))
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrRoleNotFound):
			respondError(w, http.StatusNotFound, "role not found")
		case errors.Is(err, rbac.ErrRoleIsSystem):
			respondError(w, http.StatusForbidden, "system roles cannot be deleted")
		default:
			slog.ErrorContext(r.Context(), "failed to delete role", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to delete role")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "role deleted",
	})
}
