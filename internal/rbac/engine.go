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

// Package rbac implements the role-based access control core: the level-ordered
// role hierarchy, the permission and page catalogs, and the pure decision
// functions consulted by the HTTP layer before every sensitive operation.
//
// Every function in this file is total and side-effect free. Absence of a role
// yields level 0, the "no authority" answer, never an error. Callers translate
// a false/empty result into a Forbidden response.
package rbac

// RoleLevel returns the role's authority level, or 0 when no role is assigned.
func RoleLevel(r *Role) int {
	if r == nil {
		return 0
	}
	return r.Level
}

// CanManage reports whether an actor with actorRole may manage a user holding
// targetRole. Strict inequality: peers cannot manage each other, and no role
// can manage itself, which closes off self-demotion and self-deletion through
// this path. A nil targetRole (unassigned user) is level 0 and manageable by
// any actor with a role.
func CanManage(actorRole, targetRole *Role) bool {
	return RoleLevel(actorRole) > RoleLevel(targetRole)
}

// AssignableRoles returns the subset of all that the actor may grant to other
// users. The apex tier (level >= ApexLevel) may assign every role, including
// its own tier; every other role assigns strictly lower tiers only. The
// asymmetry is deliberate: it guarantees no privilege escalation except by the
// single most-privileged tier, which must be able to replicate itself.
func AssignableRoles(actorRole *Role, all []*Role) []*Role {
	actorLevel := RoleLevel(actorRole)
	if actorLevel == 0 {
		return nil
	}

	if actorLevel >= ApexLevel {
		out := make([]*Role, len(all))
		copy(out, all)
		return out
	}

	var out []*Role
	for _, r := range all {
		if r.Level < actorLevel {
			out = append(out, r)
		}
	}
	return out
}

// HasPermission reports whether the role grants the permission. Nil-safe
// wrapper over Role.HasPermission for callers holding a possibly-absent role.
func HasPermission(r *Role, p Permission) bool {
	return r.HasPermission(p)
}

// VisiblePages returns the pages the role may navigate to: the intersection of
// its allowed-page set with the page catalog. Paths that are no longer (or
// never were) in the catalog are dropped, never granted; stale rows in storage
// must not widen visibility.
func VisiblePages(r *Role) []Page {
	if r == nil {
		return nil
	}
	var out []Page
	for _, path := range r.AllowedPages {
		if p, ok := pageByPath[path]; ok {
			out = append(out, p)
		}
	}
	return out
}

// CanAccessPage reports whether the role may navigate to the page at path.
// Unknown paths are never accessible, regardless of the role's stored set.
func CanAccessPage(r *Role, path string) bool {
	if r == nil || !KnownPage(path) {
		return false
	}
	for _, allowed := range r.AllowedPages {
		if allowed == path {
			return true
		}
	}
	return false
}
