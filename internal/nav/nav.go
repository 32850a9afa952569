// Package nav holds the role-scoped dashboard navigation tables. The menu is
// selected by an exhaustive switch over the role so adding a role without a
// menu is a compile-visible gap, not a silent empty sidebar.
package nav

import "github.com/medimart/storefront-gateway/internal/models"

// Item is one navigation entry.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Group is a titled set of navigation entries.
type Group struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

var adminGroups = []Group{
	{
		Title: "Admin",
		Items: []Item{
			{Title: "Medicine Management", URL: "/admin-dashboard/medicine"},
			{Title: "User Management", URL: "/admin-dashboard/user"},
			{Title: "Category Management", URL: "/admin-dashboard/category"},
			{Title: "Order Management", URL: "/admin-dashboard/order"},
			{Title: "Home", URL: "/"},
		},
	},
}

var sellerGroups = []Group{
	{
		Title: "Seller",
		Items: []Item{
			{Title: "Medicine Management", URL: "/seller-dashboard/medicine"},
			{Title: "Order Management", URL: "/seller-dashboard/order"},
			{Title: "Profile", URL: "/seller-dashboard/profile"},
			{Title: "Home", URL: "/"},
		},
	},
}

var customerGroups = []Group{
	{
		Title: "Customer",
		Items: []Item{
			{Title: "My Orders", URL: "/order"},
			{Title: "Profile", URL: "/customer-dashboard/profile"},
			{Title: "Shop", URL: "/shop"},
			{Title: "Home", URL: "/"},
		},
	},
}

// ForRole returns the navigation groups for a role. Unknown roles get no
// navigation at all.
func ForRole(role models.Role) []Group {
	switch role {
	case models.RoleAdmin:
		return adminGroups
	case models.RoleSeller:
		return sellerGroups
	case models.RoleCustomer:
		return customerGroups
	default:
		return nil
	}
}
