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

	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/identity"
	"github.com/stewardhq/steward/internal/observability/logger"
	"github.com/stewardhq/steward/internal/rbac"
)

// ListUsers returns all admin accounts
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.identityService.ListUsers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list users", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"users": userResponses(users),
	})
}

// InviteRequest represents an invitation
type InviteRequest struct {
	Email      string   `json:"email" validate:"required,email"`
	RoleID     string   `json:"role_id" validate:"required,uuid"`
	CompanyIDs []string `json:"company_ids" validate:"dive,uuid"`
}

// InviteUser pre-assigns a role to an email address. The invited role must be
// one the inviter could assign directly.
func (h *Handler) InviteUser(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req InviteRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	if !h.roleAssignable(w, r, actor, req.RoleID) {
		return
	}

	inv, token, err := h.identityService.Invite(r.Context(), actor.User.ID, req.Email, req.RoleID, req.CompanyIDs)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvitationExists):
			respondError(w, http.StatusConflict, "a pending invitation already exists for this email")
		case errors.Is(err, identity.ErrUserAlreadyExists):
			respondError(w, http.StatusConflict, "a user with this email already exists")
		case errors.Is(err, identity.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "invalid email address")
		default:
			slog.ErrorContext(r.Context(), "failed to create invitation", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to create invitation")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"invitation": invitationResponse(inv),
		"token":      token,
	})
}

// ListInvitations returns all pending invitations
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := h.identityService.ListInvitations(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list invitations", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list invitations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"invitations": invitationResponses(invs),
	})
}

// RevokeInvitation withdraws a pending invitation, freeing the email for a
// fresh invite after its token has expired.
func (h *Handler) RevokeInvitation(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())
	email := chi.URLParam(r, "email")

	if err := h.identityService.RevokeInvitation(r.Context(), actor.User.ID, email); err != nil {
		if errors.Is(err, identity.ErrInvitationNotFound) {
			respondError(w, http.StatusNotFound, "invitation not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to revoke invitation", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to revoke invitation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}

// AcceptInvitationRequest carries the signed token plus the account details
// the invitee chose.
type AcceptInvitationRequest struct {
	Token     string `json:"token" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=128"`
	LastName  string `json:"last_name" validate:"max=128"`
}

// AcceptInvitation promotes an invitation into an account. Consumption is
// at most once; a second accept with the same token gets a 404.
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req AcceptInvitationRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.identityService.AcceptInvitation(r.Context(), req.Token, req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidInviteToken):
			respondError(w, http.StatusUnauthorized, "invitation token is invalid or expired")
		case errors.Is(err, identity.ErrInvitationNotFound):
			respondError(w, http.StatusNotFound, "invitation not found or already used")
		case errors.Is(err, identity.ErrUserAlreadyExists):
			respondError(w, http.StatusConflict, "a user with this email already exists")
		case errors.Is(err, identity.ErrWeakPassword):
			respondError(w, http.StatusBadRequest, "password does not meet security requirements")
		default:
			slog.ErrorContext(r.Context(), "failed to accept invitation", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to accept invitation")
		}
		return
	}

	respondJSON(w, http.StatusCreated, userResponse(user))
}

// UpdateUserRoleRequest represents a role assignment
type UpdateUserRoleRequest struct {
	RoleID     *string  `json:"role_id" validate:"omitempty,uuid"`
	CompanyIDs []string `json:"company_ids" validate:"dive,uuid"`
}

// UpdateUserRole replaces the target's role and company scope. Enforcement
// order: the actor must outrank the target's current role, and the new role
// must be one the actor can assign.
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())
	targetID := chi.URLParam(r, "userID")

	var req UpdateUserRoleRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	target, err := h.identityService.GetUser(r.Context(), targetID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if !h.canManageUser(w, r, actor, target) {
		return
	}

	if req.RoleID != nil && !h.roleAssignable(w, r, actor, *req.RoleID) {
		return
	}

	updated, err := h.identityService.UpdateUserRole(r.Context(), actor.User.ID, targetID, req.RoleID, req.CompanyIDs)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update user role", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update user role")
		return
	}

	respondJSON(w, http.StatusOK, userResponse(updated))
}

// DeactivateUser disables the target account. Same outranking rule as role
// assignment.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())
	targetID := chi.URLParam(r, "userID")

	if targetID == actor.User.ID {
		respondError(w, http.StatusBadRequest, "cannot deactivate your own account")
		return
	}

	target, err := h.identityService.GetUser(r.Context(), targetID)
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	if !h.canManageUser(w, r, actor, target) {
		return
	}

	if err := h.identityService.Deactivate(r.Context(), actor.User.ID, targetID); err != nil {
		slog.ErrorContext(r.Context(), "failed to deactivate user", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to deactivate user")
		return
	}

	// Kill any live sessions so the lockout is immediate.
	if err := h.sessionService.DeleteForUser(r.Context(), targetID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete target sessions", logger.Error(err))
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "user deactivated",
	})
}

// canManageUser checks that the actor outranks the target's current role.
// Writes the 403 itself and returns false on denial.
func (h *Handler) canManageUser(w http.ResponseWriter, r *http.Request, actor *Actor, target *identity.User) bool {
	var targetRole *rbac.Role
	if target.RoleID != nil {
		role, err := h.registry.GetRole(r.Context(), *target.RoleID)
		if err != nil && !errors.Is(err, rbac.ErrRoleNotFound) {
			respondError(w, http.StatusInternalServerError, "failed to resolve target role")
			return false
		}
		targetRole = role
	}

	if !rbac.CanManage(actor.Role, targetRole) {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeAccessDenied,
			ActorID:   actor.User.ID,
			Resource:  target.ID,
			IPAddress: getIPAddress(r),
			Metadata:  map[string]any{audit.AttrReason: "cannot_manage_target"},
		})
		respondError(w, http.StatusForbidden, "cannot manage a user at or above your level")
		return false
	}
	return true
}

// roleAssignable checks that roleID names a role the actor could hand out.
// Writes the error response itself and returns false on denial.
func (h *Handler) roleAssignable(w http.ResponseWriter, r *http.Request, actor *Actor, roleID string) bool {
	all, err := h.registry.ListRoles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list roles")
		return false
	}

	for _, role := range rbac.AssignableRoles(actor.Role, all) {
		if role.ID == roleID {
			return true
		}
	}

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeAccessDenied,
		ActorID:   actor.User.ID,
		Resource:  roleID,
		IPAddress: getIPAddress(r),
		Metadata:  map[string]any{audit.AttrReason: "role_not_assignable"},
	})
	respondError(w, http.StatusForbidden, "role is not assignable at your level")
	return false
}
