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

// AdminPages is the full catalog of navigable admin pages. Role page-visibility
// is always an intersection with this list; a path not present here carries no
// meaning and grants nothing.
var AdminPages = []Page{
	{Path: "/", Name: "Dashboard", Description: "Overview and statistics", Category: "Main"},
	{Path: "/products", Name: "Products", Description: "Manage product catalog", Category: "Content"},
	{Path: "/categories", Name: "Categories", Description: "Manage product categories", Category: "Content"},
	{Path: "/companies", Name: "Companies", Description: "Manage company information", Category: "Content"},
	{Path: "/users", Name: "Users", Description: "Manage admin users", Category: "Administration"},
	{Path: "/roles", Name: "Roles & Permissions", Description: "Manage roles and page access", Category: "Administration"},
	{Path: "/emails", Name: "Support Emails", Description: "Manage customer support emails", Category: "Support"},
	{Path: "/analytics", Name: "Analytics", Description: "View performance metrics and insights", Category: "Analytics"},
	{Path: "/profile", Name: "Profile", Description: "User profile settings", Category: "Personal"},
}

var pageByPath = func() map[string]Page {
	m := make(map[string]Page, len(AdminPages))
	for _, p := range AdminPages {
		m[p.Path] = p
	}
	return m
}()

// KnownPage reports whether path is in the page catalog.
func KnownPage(path string) bool {
	_, ok := pageByPath[path]
	return ok
}

// PagesByCategory groups the page catalog for the roles UI.
func PagesByCategory() map[string][]Page {
	grouped := make(map[string][]Page)
	for _, p := range AdminPages {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped
}
