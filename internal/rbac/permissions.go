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

// Permission keys. These are compile-time constants; permissions live on
// roles, never on individual users.
const (
	PermManageUsers        Permission = "manage_users"
	PermManageRoles        Permission = "manage_roles"
	PermManageProducts     Permission = "manage_products"
	PermViewProducts       Permission = "view_products"
	PermManageCategories   Permission = "manage_categories"
	PermViewCategories     Permission = "view_categories"
	PermManageCompanies    Permission = "manage_companies"
	PermViewAnalytics      Permission = "view_analytics"
	PermManageEmails       Permission = "manage_emails"
	PermViewEmails         Permission = "view_emails"
	PermReplyEmails        Permission = "reply_emails"
	PermManageSupportStaff Permission = "manage_support_staff"
)

// PermissionCatalog maps every known permission to its display metadata.
// Used by the roles UI and for validation when creating custom roles; the
// authorization engine itself only does set membership.
var PermissionCatalog = map[Permission]PermissionInfo{
	PermissionAllAccess: {
		Name:        "All Access",
		Description: "Complete system access - can perform any action",
		Category:    "System",
	},
	PermManageUsers: {
		Name:        "Manage Users",
		Description: "Create, edit, and deactivate admin users with lower role levels",
		Category:    "User Management",
	},
	PermManageRoles: {
		Name:        "Manage Roles",
		Description: "Create and modify custom roles and their permissions",
		Category:    "User Management",
	},
	PermManageProducts: {
		Name:        "Manage Products",
		Description: "Create, edit, delete, and activate/deactivate products",
		Category:    "Content Management",
	},
	PermViewProducts: {
		Name:        "View Products",
		Description: "View product listings and details (read-only)",
		Category:    "Content Management",
	},
	PermManageCategories: {
		Name:        "Manage Categories",
		Description: "Create, edit, delete, and activate/deactivate categories",
		Category:    "Content Management",
	},
	PermViewCategories: {
		Name:        "View Categories",
		Description: "View category listings (read-only)",
		Category:    "Content Management",
	},
	PermManageCompanies: {
		Name:        "Manage Companies",
		Description: "Create, edit, delete, and activate/deactivate companies",
		Category:    "Content Management",
	},
	PermViewAnalytics: {
		Name:        "View Analytics",
		Description: "Access analytics dashboard and view performance metrics",
		Category:    "Analytics",
	},
	PermManageEmails: {
		Name:        "Manage Emails",
		Description: "View, reply to, and manage all support emails",
		Category:    "Support",
	},
	PermViewEmails: {
		Name:        "View Emails",
		Description: "View support emails (read-only)",
		Category:    "Support",
	},
	PermReplyEmails: {
		Name:        "Reply to Emails",
		Description: "Send replies to support emails",
		Category:    "Support",
	},
	PermManageSupportStaff: {
		Name:        "Manage Support Staff",
		Description: "Manage support team members and their assignments",
		Category:    "Support",
	},
}

// KnownPermission reports whether p is in the catalog.
func KnownPermission(p Permission) bool {
	_, ok := PermissionCatalog[p]
	return ok
}
