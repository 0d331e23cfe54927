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
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/stewardhq/steward/internal/analytics"
	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/catalog"
	"github.com/stewardhq/steward/internal/identity"
	"github.com/stewardhq/steward/internal/observability/logger"
	"github.com/stewardhq/steward/internal/rbac"
	"github.com/stewardhq/steward/internal/session"
	"github.com/stewardhq/steward/internal/support"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService  *identity.Service
	sessionService   *session.Service
	registry         *rbac.Registry
	catalogService   *catalog.Service
	supportService   *support.Service
	analyticsService *analytics.Service
	auditLogger      audit.Logger
	validate         *validator.Validate
	sessionConfig    SessionConfig
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	CookieName     string
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite http.SameSite
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	sessionService *session.Service,
	registry *rbac.Registry,
	catalogService *catalog.Service,
	supportService *support.Service,
	analyticsService *analytics.Service,
	auditLogger audit.Logger,
	sessionConfig SessionConfig,
) *Handler {
	return &Handler{
		identityService:  identityService,
		sessionService:   sessionService,
		registry:         registry,
		catalogService:   catalogService,
		supportService:   supportService,
		analyticsService: analyticsService,
		auditLogger:      auditLogger,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		sessionConfig:    sessionConfig,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/accept-invitation", h.AcceptInvitation)
		r.Post("/support/emails", h.RecordSupportEmail)
		r.Post("/analytics/clicks", h.TrackClick)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Post("/auth/logout", h.Logout)
			r.Get("/auth/me", h.GetCurrentUser)
			r.Put("/user/profile", h.UpdateProfile)
			r.Post("/user/change-password", h.ChangePassword)
			r.Get("/pages", h.ListVisiblePages)

			// User administration
			r.Route("/users", func(r chi.Router) {
				r.Use(h.RequirePermission(rbac.PermManageUsers))
				r.Get("/", h.ListUsers)
				r.Post("/invite", h.InviteUser)
				r.Get("/invitations", h.ListInvitations)
				r.Delete("/invitations/{email}", h.RevokeInvitation)
				r.Put("/{userID}/role", h.UpdateUserRole)
				r.Post("/{userID}/deactivate", h.DeactivateUser)
			})

			// Role administration
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.ListRoles)
				r.Get("/assignable", h.ListAssignableRoles)
				r.Get("/permissions", h.ListPermissions)
				r.Group(func(r chi.Router) {
					r.Use(h.RequirePermission(rbac.PermManageRoles))
					r.Post("/", h.CreateRole)
					r.Get("/{roleID}", h.GetRole)
					r.Put("/{roleID}/pages", h.UpdateRolePages)
					r.Delete("/{roleID}", h.DeleteRole)
				})
			})

			// Catalog. Reads accept either the view or the manage key:
			// manager roles hold only the manage key for their resource.
			r.Route("/products", func(r chi.Router) {
				r.With(h.RequireAnyPermission(rbac.PermViewProducts, rbac.PermManageProducts)).Get("/", h.ListProducts)
				r.With(h.RequireAnyPermission(rbac.PermViewProducts, rbac.PermManageProducts)).Get("/{productID}", h.GetProduct)
				r.Group(func(r chi.Router) {
					r.Use(h.RequirePermission(rbac.PermManageProducts))
					r.Post("/", h.CreateProduct)
					r.Put("/{productID}", h.UpdateProduct)
					r.Delete("/{productID}", h.DeleteProduct)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.With(h.RequireAnyPermission(rbac.PermViewCategories, rbac.PermManageCategories)).Get("/", h.ListCategories)
				r.Group(func(r chi.Router) {
					r.Use(h.RequirePermission(rbac.PermManageCategories))
					r.Post("/", h.CreateCategory)
					r.Put("/{categoryID}", h.UpdateCategory)
					r.Delete("/{categoryID}", h.DeleteCategory)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.ListCompanies)
				r.With(h.RequirePermission(rbac.PermManageCompanies)).Post("/", h.CreateCompany)
			})

			// Support inbox
			r.Route("/emails", func(r chi.Router) {
				r.With(h.RequireAnyPermission(rbac.PermViewEmails, rbac.PermManageEmails)).Get("/", h.ListSupportEmails)
				r.With(h.RequirePermission(rbac.PermManageEmails)).Post("/{emailID}/read", h.MarkSupportEmailRead)
			})

			// Analytics
			r.With(h.RequirePermission(rbac.PermViewAnalytics)).Get("/analytics/clicks", h.ClickCounts)
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "steward",
	})
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=128"`
	LastName  string `json:"last_name" validate:"max=128"`
}

// Register handles self-service registration. New accounts carry no role
// until an administrator assigns one.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.identityService.Register(r.Context(), req.Email, req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to register user",
			logger.Error(err),
			logger.Email(req.Email),
		)

		switch err {
		case identity.ErrUserAlreadyExists, identity.ErrInvitationExists:
			respondError(w, http.StatusConflict, "user already exists")
		case identity.ErrInvalidEmail:
			respondError(w, http.StatusBadRequest, "invalid email address")
		case identity.ErrWeakPassword:
			respondError(w, http.StatusBadRequest, "password does not meet security requirements")
		default:
			respondError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeLoginFailed,
			Resource:  req.Email,
			IPAddress: getIPAddress(r),
			UserAgent: r.UserAgent(),
			Metadata:  map[string]any{audit.AttrReason: "invalid_credentials"},
		})
		switch err {
		case identity.ErrAccountLocked:
			respondError(w, http.StatusForbidden, "account is temporarily locked")
		case identity.ErrAccountInactive:
			respondError(w, http.StatusForbidden, "account is deactivated")
		default:
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		}
		return
	}

	sess, err := h.sessionService.Create(r.Context(), user.ID, getIPAddress(r), r.UserAgent())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create session", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.setSessionCookie(w, sess.ID)

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeLoginSuccess,
		ActorID:   user.ID,
		Resource:  "session",
		IPAddress: getIPAddress(r),
		UserAgent: r.UserAgent(),
		Metadata:  map[string]any{"session_id": sess.ID},
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// Logout handles user logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionID(r.Context())
	actor := GetActor(r.Context())

	if sessionID != "" {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeLogout,
			ActorID:   actor.User.ID,
			Resource:  "session",
			IPAddress: getIPAddress(r),
			UserAgent: r.UserAgent(),
			Metadata:  map[string]any{"session_id": sessionID},
		})
		h.sessionService.Delete(r.Context(), sessionID)
	}

	h.clearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// GetCurrentUser returns the current authenticated user with their resolved
// role and page visibility.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"user":          userResponse(actor.User),
		"role":          roleResponse(actor.Role),
		"visible_pages": pageResponses(rbac.VisiblePages(actor.Role)),
	})
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=128"`
	LastName  string `json:"last_name" validate:"max=128"`
}

// UpdateProfile updates the caller's name fields
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req UpdateProfileRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	user, err := h.identityService.UpdateProfile(r.Context(), actor.User.ID, req.FirstName, req.LastName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, userResponse(user))
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword changes the caller's password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req ChangePasswordRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	err := h.identityService.ChangePassword(r.Context(), actor.User.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch err {
		case identity.ErrInvalidCredentials:
			respondError(w, http.StatusUnauthorized, "invalid old password")
		case identity.ErrWeakPassword:
			respondError(w, http.StatusBadRequest, "new password does not meet security requirements")
		default:
			respondError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "password changed successfully",
	})
}

// ListVisiblePages returns the pages the caller's role may see, grouped for
// navigation rendering.
func (h *Handler) ListVisiblePages(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"pages": pageResponses(rbac.VisiblePages(actor.Role)),
	})
}

// Helper functions
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionConfig.CookieName,
		Value:    sessionID,
		Path:     h.sessionConfig.CookiePath,
		Domain:   h.sessionConfig.CookieDomain,
		Secure:   h.sessionConfig.CookieSecure,
		HttpOnly: h.sessionConfig.CookieHTTPOnly,
		SameSite: h.sessionConfig.CookieSameSite,
		MaxAge:   86400, // 24 hours
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   h.sessionConfig.CookieName,
		Value:  "",
		Path:   h.sessionConfig.CookiePath,
		Domain: h.sessionConfig.CookieDomain,
		MaxAge: -1,
	})
}

func (h *Handler) getSessionFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(h.sessionConfig.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// decodeValid decodes the JSON body into dst and runs struct validation.
// Writes the error response itself and returns false on failure.
func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
