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
	"time"

	"github.com/stewardhq/steward/internal/analytics"
	"github.com/stewardhq/steward/internal/catalog"
	"github.com/stewardhq/steward/internal/identity"
	"github.com/stewardhq/steward/internal/rbac"
	"github.com/stewardhq/steward/internal/support"
)

// Wire shapes. Domain structs stay tag-free; everything that crosses the API
// boundary goes through one of these.

type UserResponse struct {
	ID                 string   `json:"id"`
	Email              string   `json:"email"`
	Username           string   `json:"username"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	RoleID             *string  `json:"role_id"`
	CompanyIDs         []string `json:"company_ids"`
	VerificationStatus string   `json:"verification_status"`
	IsActive           bool     `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

func userResponse(u *identity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		RoleID:             u.RoleID,
		CompanyIDs:         u.CompanyIDs,
		VerificationStatus: string(u.VerificationStatus),
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
	}
}

func userResponses(users []*identity.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = userResponse(u)
	}
	return out
}

type RoleResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Level        int      `json:"level"`
	Permissions  []string `json:"permissions"`
	AllowedPages []string `json:"allowed_pages"`
	IsSystem     bool     `json:"is_system"`
	Description  string   `json:"description"`
}

func roleResponse(r *rbac.Role) *RoleResponse {
	if r == nil {
		return nil
	}
	perms := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = string(p)
	}
	return &RoleResponse{
		ID:           r.ID,
		Name:         r.Name,
		Level:        r.Level,
		Permissions:  perms,
		AllowedPages: r.AllowedPages,
		IsSystem:     r.IsSystem,
		Description:  r.Description,
	}
}

func roleResponses(roles []*rbac.Role) []*RoleResponse {
	out := make([]*RoleResponse, len(roles))
	for i, r := range roles {
		out[i] = roleResponse(r)
	}
	return out
}

type PageResponse struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func pageResponses(pages []rbac.Page) []PageResponse {
	out := make([]PageResponse, len(pages))
	for i, p := range pages {
		out[i] = PageResponse{
			Path:        p.Path,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
		}
	}
	return out
}

type InvitationResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	RoleID     string    `json:"role_id"`
	CompanyIDs []string  `json:"company_ids"`
	InviterID  string    `json:"inviter_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func invitationResponse(inv *identity.Invitation) *InvitationResponse {
	if inv == nil {
		return nil
	}
	return &InvitationResponse{
		ID:         inv.ID,
		Email:      inv.Email,
		RoleID:     inv.RoleID,
		CompanyIDs: inv.CompanyIDs,
		InviterID:  inv.InviterID,
		Status:     inv.Status,
		CreatedAt:  inv.CreatedAt,
	}
}

func invitationResponses(invs []*identity.Invitation) []*InvitationResponse {
	out := make([]*InvitationResponse, len(invs))
	for i, inv := range invs {
		out[i] = invitationResponse(inv)
	}
	return out
}

type ProductResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Performance      string    `json:"performance"`
	CategoryID       string    `json:"category_id"`
	CompanyID        string    `json:"company_id"`
	MainImage        string    `json:"main_image"`
	AdditionalImages []string  `json:"additional_images"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

func productResponse(p *catalog.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Performance:      p.Performance,
		CategoryID:       p.CategoryID,
		CompanyID:        p.CompanyID,
		MainImage:        p.MainImage,
		AdditionalImages: p.AdditionalImages,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
	}
}

func productResponses(products []*catalog.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(products))
	for i, p := range products {
		out[i] = productResponse(p)
	}
	return out
}

type CategoryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
	IsActive bool    `json:"is_active"`
}

func categoryResponse(c *catalog.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, ParentID: c.ParentID, IsActive: c.IsActive}
}

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func companyResponse(c *catalog.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

type EmailResponse struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	ReceivedAt time.Time `json:"received_at"`
}

func emailResponse(e *support.Email) *EmailResponse {
	if e == nil {
		return nil
	}
	return &EmailResponse{
		ID:         e.ID,
		From:       e.From,
		Subject:    e.Subject,
		Message:    e.Message,
		IsRead:     e.IsRead,
		ReceivedAt: e.ReceivedAt,
	}
}

type ClickCountResponse struct {
	ProductID string `json:"product_id"`
	Count     int64  `json:"count"`
}

func clickCountResponses(counts []*analytics.ClickCount) []ClickCountResponse {
	out := make([]ClickCountResponse, len(counts))
	for i, c := range counts {
		out[i] = ClickCountResponse{ProductID: c.ProductID, Count: c.Count}
	}
	return out
}
