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

package rbac

// ScopeAllows reports whether a resource owned by ownerID is inside the scope
// described by companyIDs. An empty scope is unrestricted; a non-empty scope
// admits only resources owned by one of its companies. A resource with no
// owner is out of scope for a restricted actor.
func ScopeAllows(companyIDs []string, ownerID string) bool {
	if len(companyIDs) == 0 {
		return true
	}
	if ownerID == "" {
		return false
	}
	for _, id := range companyIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

// FilterByScope returns the items whose owner (as reported by ownerOf) is
// inside the scope. Applied as a post-filter on list endpoints; an empty scope
// returns items unchanged.
func FilterByScope[T any](companyIDs []string, items []T, ownerOf func(T) string) []T {
	if len(companyIDs) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if ScopeAllows(companyIDs, ownerOf(item)) {
			out = append(out, item)
		}
	}
	return out
}
