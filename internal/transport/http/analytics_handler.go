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
	"log/slog"
	"net/http"

	"github.com/stewardhq/steward/internal/observability/logger"
)

// TrackClickRequest represents a product click event
type TrackClickRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// TrackClick records a product click. Public so the storefront can report
// clicks without a session.
func (h *Handler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req TrackClickRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	click, err := h.analyticsService.TrackClick(r.Context(), req.ProductID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to track click", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to track click")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"click_id":   click.ID,
		"product_id": click.ProductID,
	})
}

// ClickCounts returns aggregate click counts per product
func (h *Handler) ClickCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.analyticsService.ClickCounts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to aggregate clicks", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to aggregate clicks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"clicks": clickCountResponses(counts),
	})
}
