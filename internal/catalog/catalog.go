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

// Package catalog holds the product, category, and company entities the admin
// dashboard manages. Products are owned by a company, which is the unit the
// rbac scoping filter restricts on.
package catalog

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCompanyNotFound  = errors.New("company not found")
)

// Product is a catalog entry. CompanyID is the ownership anchor for scoping;
// a product with no company is visible only to unrestricted actors.
type Product struct {
	ID               string
	Name             string
	Description      string
	Performance      string
	CategoryID       string
	CompanyID        string
	MainImage        string
	AdditionalImages []string
	IsActive         bool
	CreatedAt        time.Time
}

// Category groups products. Categories are not company-scoped.
type Category struct {
	ID       string
	Name     string
	ParentID *string
	IsActive bool
}

// Company is a brand/owner whose ID appears in user scopes.
type Company struct {
	ID       string
	Name     string
	IsActive bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error
}
