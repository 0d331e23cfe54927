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

// Package analytics tracks product click counters for the dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/stewardhq/steward/internal/id"
)

// Click is a single recorded product click.
type Click struct {
	ID        string
	ProductID string
	ClickedAt time.Time
}

// ClickCount aggregates clicks per product.
type ClickCount struct {
	ProductID string
	Count     int64
}

// ClickRepository defines the interface for click persistence
type ClickRepository interface {
	Create(ctx context.Context, c *Click) error
	CountByProduct(ctx context.Context) ([]*ClickCount, error)
}

// Service provides analytics business logic
type Service struct {
	repo ClickRepository
}

// NewService creates a new analytics service
func NewService(repo ClickRepository) *Service {
	return &Service{repo: repo}
}

// TrackClick records a product click
func (s *Service) TrackClick(ctx context.Context, productID string) (*Click, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	c := &Click{
		ID:        id.New(),
		ProductID: productID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to track click: %w", err)
	}
	return c, nil
}

// ClickCounts returns aggregate click counts per product
func (s *Service) ClickCounts(ctx context.Context) ([]*ClickCount, error) {
	return s.repo.CountByProduct(ctx)
}
