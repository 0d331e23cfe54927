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

// -----------------------------------------------------------------------------
// System Role Names
// These are the canonical names for the seeded role hierarchy.
// -----------------------------------------------------------------------------

const (
	RoleSuperAdmin      = "Super Admin"
	RoleAdmin           = "Admin"
	RoleCategoryManager = "Category Manager"
	RoleProductManager  = "Product Manager"
	RoleSupportManager  = "Support Manager"
	RoleSupportStaff    = "Support Staff"
	RoleViewer          = "Viewer"
)

// SystemRoleDef describes a seeded system role. Levels are stable; migrations
// that move a role in the hierarchy need a data migration plan.
type SystemRoleDef struct {
	Name         string
	Level        int
	Description  string
	Permissions  []Permission
	AllowedPages []string
}

// SystemRoles is the seeded role hierarchy, highest authority first. Super
// Admin is the apex tier and the only role subject to the self-assignment
// exception in AssignableRoles.
var SystemRoles = []SystemRoleDef{
	{
		Name:        RoleSuperAdmin,
		Level:       100,
		Description: "Full system administrator with all permissions",
		Permissions: []Permission{
			PermManageUsers, PermManageRoles, PermManageProducts,
			PermManageCategories, PermManageCompanies, PermViewAnalytics,
			PermManageEmails, PermissionAllAccess,
		},
		AllowedPages: []string{"/", "/products", "/categories", "/companies", "/users", "/roles", "/emails", "/analytics", "/profile"},
	},
	{
		Name:        RoleAdmin,
		Level:       80,
		Description: "Administrator who can manage most aspects of the system",
		Permissions: []Permission{
			PermManageUsers, PermManageProducts, PermManageCategories,
			PermManageCompanies, PermViewAnalytics, PermManageEmails,
		},
		AllowedPages: []string{"/", "/products", "/categories", "/companies", "/users", "/emails", "/analytics", "/profile"},
	},
	{
		Name:         RoleCategoryManager,
		Level:        60,
		Description:  "Manages product categories and related products",
		Permissions:  []Permission{PermManageCategories, PermManageProducts, PermViewAnalytics},
		AllowedPages: []string{"/", "/products", "/categories", "/analytics", "/profile"},
	},
	{
		Name:         RoleProductManager,
		Level:        50,
		Description:  "Manages product catalog and inventory",
		Permissions:  []Permission{PermManageProducts, PermViewProducts, PermViewAnalytics},
		AllowedPages: []string{"/", "/products", "/analytics", "/profile"},
	},
	{
		Name:         RoleSupportManager,
		Level:        40,
		Description:  "Manages customer support team and emails",
		Permissions:  []Permission{PermManageEmails, PermViewEmails, PermManageSupportStaff},
		AllowedPages: []string{"/", "/emails", "/profile"},
	},
	{
		Name:         RoleSupportStaff,
		Level:        20,
		Description:  "Handles customer support inquiries",
		Permissions:  []Permission{PermViewEmails, PermReplyEmails},
		AllowedPages: []string{"/", "/emails", "/profile"},
	},
	{
		Name:         RoleViewer,
		Level:        10,
		Description:  "Read-only access to view content",
		Permissions:  []Permission{PermViewProducts, PermViewCategories, PermViewAnalytics},
		AllowedPages: []string{"/", "/products", "/categories", "/analytics", "/profile"},
	},
}
