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
	"context"

	"github.com/stewardhq/steward/internal/identity"
	"github.com/stewardhq/steward/internal/rbac"
)

type contextKey string

const (
	actorKey     contextKey = "actor"
	sessionIDKey contextKey = "session_id"
)

// Actor is the resolved caller of an authenticated request. Role is nil when
// the user has no role assigned; every authorization check treats that as
// zero authority.
type Actor struct {
	User *identity.User
	Role *rbac.Role
}

// Scope returns the actor's company scope. Empty means unrestricted.
func (a *Actor) Scope() []string {
	if a == nil || a.User == nil {
		return nil
	}
	return a.User.CompanyIDs
}

// GetActor retrieves the authenticated actor from context.
func GetActor(ctx context.Context) *Actor {
	if val, ok := ctx.Value(actorKey).(*Actor); ok {
		return val
	}
	return nil
}

// GetSessionID retrieves the session ID from context.
func GetSessionID(ctx context.Context) string {
	if val, ok := ctx.Value(sessionIDKey).(string); ok {
		return val
	}
	return ""
}
