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
	"github.com/stewardhq/steward/internal/catalog"
	"github.com/stewardhq/steward/internal/observability/logger"
	"github.com/stewardhq/steward/internal/rbac"
)

// ListProducts returns the products visible within the caller's company
// scope. Unrestricted actors see everything.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	products, err := h.catalogService.ListProducts(r.Context(), actor.Scope())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list products", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"products": productResponses(products),
	})
}

// GetProduct returns a single product if it is inside the caller's scope
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	product, err := h.catalogService.GetProduct(r.Context(), actor.Scope(), chi.URLParam(r, "productID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	respondJSON(w, http.StatusOK, productResponse(product))
}

// ProductRequest represents product create/update data
type ProductRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=255"`
	Description      string   `json:"description" validate:"max=4096"`
	Performance      string   `json:"performance" validate:"max=4096"`
	CategoryID       string   `json:"category_id" validate:"omitempty,uuid"`
	CompanyID        string   `json:"company_id" validate:"omitempty,uuid"`
	MainImage        string   `json:"main_image" validate:"max=1024"`
	AdditionalImages []string `json:"additional_images" validate:"dive,max=1024"`
	IsActive         *bool    `json:"is_active"`
}

// CreateProduct creates a product owned by a company inside the caller's
// scope.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req ProductRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	p := &catalog.Product{
		Name:             req.Name,
		Description:      req.Description,
		Performance:      req.Performance,
		CategoryID:       req.CategoryID,
		CompanyID:        req.CompanyID,
		MainImage:        req.MainImage,
		AdditionalImages: req.AdditionalImages,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}

	created, err := h.catalogService.CreateProduct(r.Context(), actor.Scope(), p)
	if err != nil {
		h.respondCatalogError(w, r, actor, err, "failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, productResponse(created))
}

// UpdateProduct updates a product. Both the current owner and any new owner
// must be inside the caller's scope.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	var req ProductRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	updated, err := h.catalogService.UpdateProduct(r.Context(), actor.Scope(), chi.URLParam(r, "productID"), func(p *catalog.Product) {
		p.Name = req.Name
		p.Description = req.Description
		p.Performance = req.Performance
		p.CategoryID = req.CategoryID
		p.CompanyID = req.CompanyID
		p.MainImage = req.MainImage
		p.AdditionalImages = req.AdditionalImages
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
	})
	if err != nil {
		h.respondCatalogError(w, r, actor, err, "failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, productResponse(updated))
}

// DeleteProduct removes a product inside the caller's scope
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor := GetActor(r.Context())

	err := h.catalogService.DeleteProduct(r.Context(), actor.Scope(), chi.URLParam(r, "productID"))
	if err != nil {
		h.respondCatalogError(w, r, actor, err, "failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "product deleted",
	})
}

// ListCategories returns all categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list categories", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryResponse(c)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": out,
	})
}

// CategoryRequest represents category create/update data
type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
	IsActive *bool   `json:"is_active"`
}

// CreateCategory creates a category
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	created, err := h.catalogService.CreateCategory(r.Context(), &catalog.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
		IsActive: req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create category", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	respondJSON(w, http.StatusCreated, categoryResponse(created))
}

// UpdateCategory updates a category
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	updated, err := h.catalogService.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), func(c *catalog.Category) {
		c.Name = req.Name
		c.ParentID = req.ParentID
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to update category", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	respondJSON(w, http.StatusOK, categoryResponse(updated))
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := h.catalogService.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		slog.ErrorContext(r.Context(), "failed to delete category", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "category deleted",
	})
}

// ListCompanies returns all companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.catalogService.ListCompanies(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list companies", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}

	out := make([]*CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = companyResponse(c)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"companies": out,
	})
}

// CompanyRequest represents company create data
type CompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	IsActive *bool  `json:"is_active"`
}

// CreateCompany creates a company
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	created, err := h.catalogService.CreateCompany(r.Context(), &catalog.Company{
		Name:     req.Name,
		IsActive: req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create company", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create company")
		return
	}

	respondJSON(w, http.StatusCreated, companyResponse(created))
}

// respondCatalogError maps catalog/scope errors to HTTP responses, auditing
// scope denials.
func (h *Handler) respondCatalogError(w http.ResponseWriter, r *http.Request, actor *Actor, err error, fallback string) {
	switch {
	case errors.Is(err, rbac.ErrOutOfScope):
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeScopeDenied,
			ActorID:   actor.User.ID,
			Resource:  r.URL.Path,
			IPAddress: getIPAddress(r),
		})
		respondError(w, http.StatusForbidden, "resource is outside your company scope")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		respondError(w, http.StatusBadRequest, "unknown category")
	case errors.Is(err, catalog.ErrCompanyNotFound):
		respondError(w, http.StatusBadRequest, "unknown company")
	default:
		slog.ErrorContext(r.Context(), fallback, logger.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
