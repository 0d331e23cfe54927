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

	"github.com/stewardhq/steward/internal/analytics"
)

// ClickRepository implements analytics.ClickRepository
type ClickRepository struct {
	db *DB
}

// NewClickRepository creates a new click repository
func NewClickRepository(db *DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// Create records a product click
func (r *ClickRepository) Create(ctx context.Context, c *analytics.Click) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO product_clicks (id, product_id, clicked_at)
		VALUES ($1, $2, $3)
	`, c.ID, c.ProductID, now)
	if err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}

	c.ClickedAt = now
	return nil
}

// CountByProduct aggregates click counts per product
func (r *ClickRepository) CountByProduct(ctx context.Context) ([]*analytics.ClickCount, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT product_id, COUNT(*)
		FROM product_clicks
		GROUP BY product_id
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query click counts: %w", err)
	}
	defer rows.Close()

	var counts []*analytics.ClickCount
	for rows.Next() {
		var c analytics.ClickCount
		if err := rows.Scan(&c.ProductID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}
