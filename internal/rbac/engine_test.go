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

package rbac_test

import (
	"testing"

	"github.com/stewardhq/steward/internal/rbac"
)

func role(name string, level int, perms ...rbac.Permission) *rbac.Role {
	return &rbac.Role{ID: "role-" + name, Name: name, Level: level, Permissions: perms}
}

// TestPurpose: Validates that management authority requires a strictly higher level.
// Scope: Unit Test
// Security: Privilege escalation prevention
// Expected: Equal-level and lower-level actors are denied; a missing target role is manageable by anyone with authority.
// Test Case ID: RBC-01
func TestCanManage_StrictOrdering(t *testing.T) {
	admin := role("Admin", 80)
	manager := role("Product Manager", 50)
	peer := role("Other Admin", 80)

	if !rbac.CanManage(admin, manager) {
		t.Error("higher level actor should manage lower level target")
	}
	if rbac.CanManage(manager, admin) {
		t.Error("lower level actor must not manage higher level target")
	}
	if rbac.CanManage(admin, peer) {
		t.Error("equal levels must not manage each other")
	}
	if rbac.CanManage(nil, manager) {
		t.Error("actor without a role has no authority")
	}
	if !rbac.CanManage(manager, nil) {
		t.Error("a target with no role is below any real role")
	}
	if rbac.CanManage(nil, nil) {
		t.Error("no role on either side means no management")
	}
}

// TestPurpose: Validates assignable-role computation, including the apex self-assignment exception.
// Scope: Unit Test
// Security: Role assignment ceiling
// Expected: Non-apex actors may assign only strictly lower roles; apex actors may assign every role including their own tier.
// Test Case ID: RBC-02
func TestAssignableRoles_ApexException(t *testing.T) {
	super := role("Super Admin", 100)
	admin := role("Admin", 80)
	manager := role("Product Manager", 50)
	viewer := role("Viewer", 10)
	all := []*rbac.Role{super, admin, manager, viewer}

	got := rbac.AssignableRoles(admin, all)
	if len(got) != 2 {
		t.Fatalf("expected 2 assignable roles for admin, got %d", len(got))
	}
	for _, r := range got {
		if r.Level >= admin.Level {
			t.Errorf("admin must not assign role %q at level %d", r.Name, r.Level)
		}
	}

	got = rbac.AssignableRoles(super, all)
	if len(got) != len(all) {
		t.Fatalf("apex actor should see every role, got %d of %d", len(got), len(all))
	}

	if got := rbac.AssignableRoles(viewer, all); len(got) != 0 {
		t.Errorf("viewer outranks nothing, got %d roles", len(got))
	}
	if got := rbac.AssignableRoles(nil, all); got != nil {
		t.Errorf("actor without a role assigns nothing, got %v", got)
	}
}

// TestPurpose: Validates the all_access wildcard and nil-role permission checks.
// Scope: Unit Test
// Expected: all_access grants every permission; nil roles grant none.
// Test Case ID: RBC-03
func TestHasPermission_Wildcard(t *testing.T) {
	super := role("Super Admin", 100, rbac.PermissionAllAccess)
	support := role("Support Staff", 20, rbac.PermViewEmails, rbac.PermReplyEmails)

	if !rbac.HasPermission(super, rbac.PermManageRoles) {
		t.Error("all_access should grant manage_roles")
	}
	if !rbac.HasPermission(support, rbac.PermViewEmails) {
		t.Error("directly held permission denied")
	}
	if rbac.HasPermission(support, rbac.PermManageUsers) {
		t.Error("unheld permission granted")
	}
	if rbac.HasPermission(nil, rbac.PermViewProducts) {
		t.Error("nil role must grant nothing")
	}
}

// TestPurpose: Validates page visibility as an intersection with the static page catalog.
// Scope: Unit Test
// Expected: Stale page references are silently dropped; order follows the catalog.
// Test Case ID: RBC-04
func TestVisiblePages_DropsStaleReferences(t *testing.T) {
	r := role("Custom", 40)
	r.AllowedPages = []string{"/products", "/removed-page", "/emails"}

	pages := rbac.VisiblePages(r)
	if len(pages) != 2 {
		t.Fatalf("expected 2 visible pages, got %d", len(pages))
	}
	if pages[0].Path != "/products" || pages[1].Path != "/emails" {
		t.Errorf("unexpected pages: %v", pages)
	}

	if got := rbac.VisiblePages(nil); len(got) != 0 {
		t.Errorf("nil role sees no pages, got %v", got)
	}
}

// TestPurpose: Validates per-page access checks.
// Scope: Unit Test
// Expected: Access only for catalog pages listed on the role.
// Test Case ID: RBC-05
func TestCanAccessPage(t *testing.T) {
	r := role("Custom", 40)
	r.AllowedPages = []string{"/products"}

	if !rbac.CanAccessPage(r, "/products") {
		t.Error("listed page denied")
	}
	if rbac.CanAccessPage(r, "/users") {
		t.Error("unlisted page granted")
	}
	if rbac.CanAccessPage(r, "/nonexistent") {
		t.Error("unknown page granted")
	}
	if rbac.CanAccessPage(nil, "/products") {
		t.Error("nil role granted")
	}
}

// TestPurpose: Validates that every seeded system role references only known permissions and pages.
// Scope: Unit Test
// Expected: The compiled role hierarchy is internally consistent.
// Test Case ID: RBC-06
func TestSystemRoles_Consistency(t *testing.T) {
	seenLevels := make(map[int]string)
	for _, def := range rbac.SystemRoles {
		for _, p := range def.Permissions {
			if !rbac.KnownPermission(p) {
				t.Errorf("role %q holds unknown permission %q", def.Name, p)
			}
		}
		for _, page := range def.AllowedPages {
			if !rbac.KnownPage(page) {
				t.Errorf("role %q references unknown page %q", def.Name, page)
			}
		}
		if prev, ok := seenLevels[def.Level]; ok {
			t.Errorf("roles %q and %q share level %d", prev, def.Name, def.Level)
		}
		seenLevels[def.Level] = def.Name
	}

	apex := 0
	for _, def := range rbac.SystemRoles {
		if def.Level >= rbac.ApexLevel {
			apex++
		}
	}
	if apex != 1 {
		t.Errorf("expected exactly one apex role, got %d", apex)
	}
}
