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

package catalog

import (
	"context"
	"fmt"

	"github.com/stewardhq/steward/internal/id"
	"github.com/stewardhq/steward/internal/rbac"
)

// Service provides catalog business logic with company scoping applied. The
// scope argument on each method is the acting user's CompanyIDs; role-level
// permission checks happen in the transport layer before calls arrive here.
type Service struct {
	products   ProductRepository
	categories CategoryRepository
	companies  CompanyRepository
}

// NewService creates a new catalog service
func NewService(products ProductRepository, categories CategoryRepository, companies CompanyRepository) *Service {
	return &Service{
		products:   products,
		categories: categories,
		companies:  companies,
	}
}

// ListProducts returns products visible to the scope, post-filtered by owner.
func (s *Service) ListProducts(ctx context.Context, scope []string) ([]*Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rbac.FilterByScope(scope, products, func(p *Product) string { return p.CompanyID }), nil
}

// GetProduct returns a product if it is inside the scope. Cross-scope reads
// report not-found rather than forbidden so restricted actors cannot probe for
// the existence of other companies' products.
func (s *Service) GetProduct(ctx context.Context, scope []string, productID string) (*Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !rbac.ScopeAllows(scope, p.CompanyID) {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// CreateProduct creates a product. A restricted actor may only create products
// for companies inside their scope.
func (s *Service) CreateProduct(ctx context.Context, scope []string, p *Product) (*Product, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if !rbac.ScopeAllows(scope, p.CompanyID) {
		return nil, rbac.ErrOutOfScope
	}
	if p.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, p.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
	}
	if p.CompanyID != "" {
		if _, err := s.companies.GetByID(ctx, p.CompanyID); err != nil {
			return nil, ErrCompanyNotFound
		}
	}

	p.ID = id.New()
	p.IsActive = true
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// UpdateProduct mutates a product already inside the scope. Moving a product
// to a company outside the scope is also rejected.
func (s *Service) UpdateProduct(ctx context.Context, scope []string, productID string, update func(*Product)) (*Product, error) {
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !rbac.ScopeAllows(scope, existing.CompanyID) {
		return nil, rbac.ErrOutOfScope
	}

	update(existing)
	if !rbac.ScopeAllows(scope, existing.CompanyID) {
		return nil, rbac.ErrOutOfScope
	}

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return existing, nil
}

// DeleteProduct removes a product inside the scope.
func (s *Service) DeleteProduct(ctx context.Context, scope []string, productID string) error {
	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !rbac.ScopeAllows(scope, existing.CompanyID) {
		return rbac.ErrOutOfScope
	}
	return s.products.Delete(ctx, productID)
}

// ListCategories returns all categories. Categories carry no company owner,
// so no scoping applies.
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory creates a category
func (s *Service) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	c.ID = id.New()
	c.IsActive = true
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// UpdateCategory mutates a category
func (s *Service) UpdateCategory(ctx context.Context, categoryID string, update func(*Category)) (*Category, error) {
	existing, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	update(existing)
	if err := s.categories.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return existing, nil
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return s.categories.Delete(ctx, categoryID)
}

// ListCompanies returns all companies
func (s *Service) ListCompanies(ctx context.Context) ([]*Company, error) {
	return s.companies.List(ctx)
}

// CreateCompany creates a company
func (s *Service) CreateCompany(ctx context.Context, c *Company) (*Company, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	c.ID = id.New()
	c.IsActive = true
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return c, nil
}
