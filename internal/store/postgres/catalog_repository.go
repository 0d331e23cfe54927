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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stewardhq/steward/internal/catalog"
)

// ProductRepository implements catalog.ProductRepository
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, performance, category_id, company_id,
			main_image, additional_images, is_active, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, NULLIF($6, '')::uuid, $7, $8, $9, $10)
	`,
		p.ID, p.Name, p.Description, p.Performance, p.CategoryID, p.CompanyID,
		p.MainImage, p.AdditionalImages, p.IsActive, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	p.CreatedAt = now
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := scanProduct(r.db.pool.QueryRow(ctx, `
		SELECT id, name, description, performance,
			COALESCE(category_id::text, ''), COALESCE(company_id::text, ''),
			main_image, additional_images, is_active, created_at
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// List retrieves all products
func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, description, performance,
			COALESCE(category_id::text, ''), COALESCE(company_id::text, ''),
			main_image, additional_images, is_active, created_at
		FROM products
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE products SET
			name = $2,
			description = $3,
			performance = $4,
			category_id = NULLIF($5, '')::uuid,
			company_id = NULLIF($6, '')::uuid,
			main_image = $7,
			additional_images = $8,
			is_active = $9
		WHERE id = $1
	`,
		p.ID, p.Name, p.Description, p.Performance, p.CategoryID, p.CompanyID,
		p.MainImage, p.AdditionalImages, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var p catalog.Product
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Performance, &p.CategoryID, &p.CompanyID,
		&p.MainImage, &p.AdditionalImages, &p.IsActive, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// CategoryRepository implements catalog.CategoryRepository
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO categories (id, name, parent_id, is_active)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.ParentID, c.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, parent_id, is_active FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.ParentID, &c.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// List retrieves all categories
func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, parent_id, is_active FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE categories SET name = $2, parent_id = $3, is_active = $4
		WHERE id = $1
	`, c.ID, c.Name, c.ParentID, c.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// CompanyRepository implements catalog.CompanyRepository
type CompanyRepository struct {
	db *DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, c *catalog.Company) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO companies (id, name, is_active)
		VALUES ($1, $2, $3)
	`, c.ID, c.Name, c.IsActive)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*catalog.Company, error) {
	var c catalog.Company
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, is_active FROM companies WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, catalog.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// List retrieves all companies
func (r *CompanyRepository) List(ctx context.Context) ([]*catalog.Company, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, is_active FROM companies ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []*catalog.Company
	for rows.Next() {
		var c catalog.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

// Update updates a company
func (r *CompanyRepository) Update(ctx context.Context, c *catalog.Company) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE companies SET name = $2, is_active = $3 WHERE id = $1
	`, c.ID, c.Name, c.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if result.RowsAffected() == 0 {
		return catalog.ErrCompanyNotFound
	}
	return nil
}
