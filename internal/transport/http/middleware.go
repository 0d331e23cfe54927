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
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/observability/logger"
	"github.com/stewardhq/steward/internal/rbac"
)

// Enforcement principles:
// 1. Authority comes only from the actor's resolved role; a missing role is
//    zero authority, never a fallback to some default.
// 2. Permission checks fail closed: unknown permissions and nil roles deny.
// 3. Scope restriction is enforced in the service layer on top of these
//    route-level gates.

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Log request start
			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// AuthMiddleware validates the session cookie and resolves the actor: the
// user record plus their role, fetched fresh on every request so revocations
// take effect immediately.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := h.getSessionFromCookie(r)
		if sessionID == "" {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		sess, err := h.sessionService.Get(r.Context(), sessionID)
		if err != nil {
			h.clearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		user, err := h.identityService.GetUser(r.Context(), sess.UserID)
		if err != nil {
			h.clearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		if !user.IsActive {
			respondError(w, http.StatusForbidden, "account is deactivated")
			return
		}

		actor := &Actor{User: user}
		if user.RoleID != nil {
			role, err := h.registry.GetRole(r.Context(), *user.RoleID)
			if err != nil && !errors.Is(err, rbac.ErrRoleNotFound) {
				slog.ErrorContext(r.Context(), "failed to resolve actor role", logger.Error(err))
				respondError(w, http.StatusInternalServerError, "failed to resolve role")
				return
			}
			// A dangling role reference degrades to no authority.
			actor.Role = role
		}

		if err := h.sessionService.Refresh(r.Context(), sessionID); err != nil {
			slog.ErrorContext(r.Context(), "failed to refresh session", logger.Error(err))
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		ctx = context.WithValue(ctx, sessionIDKey, sess.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission gates a route on a permission check against the actor's
// role. all_access passes every check.
func (h *Handler) RequirePermission(perm rbac.Permission) func(http.Handler) http.Handler {
	return h.RequireAnyPermission(perm)
}

// RequireAnyPermission gates a route on holding at least one of the given
// permissions. Read routes accept the manage key for the same resource, since
// the seeded manager roles carry manage keys without the view keys.
func (h *Handler) RequireAnyPermission(perms ...rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())
			if actor == nil {
				respondError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			for _, perm := range perms {
				if rbac.HasPermission(actor.Role, perm) {
					next.ServeHTTP(w, r)
					return
				}
			}

			denied := make([]string, len(perms))
			for i, perm := range perms {
				denied[i] = string(perm)
			}
			h.auditLogger.Log(r.Context(), audit.Event{
				Type:      audit.TypeAccessDenied,
				ActorID:   actor.User.ID,
				Resource:  r.URL.Path,
				IPAddress: getIPAddress(r),
				Metadata:  map[string]any{"permissions": denied},
			})
			respondError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// RequireLevel gates a route on a minimum role level.
func (h *Handler) RequireLevel(level int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())
			if actor == nil {
				respondError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if rbac.RoleLevel(actor.Role) < level {
				h.auditLogger.Log(r.Context(), audit.Event{
					Type:      audit.TypeAccessDenied,
					ActorID:   actor.User.ID,
					Resource:  r.URL.Path,
					IPAddress: getIPAddress(r),
					Metadata:  map[string]any{"required_level": level},
				})
				respondError(w, http.StatusForbidden, "insufficient role level")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
