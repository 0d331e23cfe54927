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
	"github.com/stewardhq/steward/internal/support"
)

// RecordSupportEmailRequest represents an inbound support message
type RecordSupportEmailRequest struct {
	From    string `json:"from" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=512"`
	Message string `json:"message" validate:"max=16384"`
}

// RecordSupportEmail ingests an inbound support email. Public so the
// storefront contact form can post directly.
func (h *Handler) RecordSupportEmail(w http.ResponseWriter, r *http.Request) {
	var req RecordSupportEmailRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	email, err := h.supportService.Record(r.Context(), req.From, req.Subject, req.Message)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to record support email", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to record support email")
		return
	}

	respondJSON(w, http.StatusCreated, emailResponse(email))
}

// ListSupportEmails returns the support inbox, newest first
func (h *Handler) ListSupportEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.supportService.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list support emails", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list support emails")
		return
	}

	out := make([]*EmailResponse, len(emails))
	for i, e := range emails {
		out[i] = emailResponse(e)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"emails": out,
	})
}

// MarkSupportEmailRead flags an email as read
func (h *Handler) MarkSupportEmailRead(w http.ResponseWriter, r *http.Request) {
	err := h.supportService.MarkRead(r.Context(), chi.URLParam(r, "emailID"))
	if err != nil {
		if errors.Is(err, support.ErrEmailNotFound) {
			respondError(w, http.StatusNotFound, "email not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to mark email read", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to mark email read")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "email marked read",
	})
}
