// Package rbac is the single place where a role is turned into what the
// viewer may see: navigation entries, capabilities, and the dashboard
// variant. Handlers consult this table instead of keeping their own role
// lists.
package rbac

// Role is a mutually exclusive account attribute, assigned at registration
// and mutated only by administrative action.
type Role string

const (
	RoleClient     Role = "client"
	RoleRestaurant Role = "restaurant"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleDev        Role = "dev"
)

var AllRoles = []Role{RoleClient, RoleRestaurant, RoleManager, RoleAdmin, RoleDev}

// Valid reports whether r is a known role.
func Valid(r Role) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Capability names an action a role may perform.
type Capability string

const (
	CapBookReservation   Capability = "reservation:book"
	CapManageReservation Capability = "reservation:manage"
	CapPrintPass         Capability = "reservation:pass"
	CapManageMenu        Capability = "menu:manage"
	CapManageStock       Capability = "stock:manage"
	CapManageStaff       Capability = "staff:manage"
	CapManageContent     Capability = "cms:manage"
	CapManagePackages    Capability = "packages:manage"
	CapManageEvents      Capability = "events:manage"
	CapManageCustomers   Capability = "customers:manage"
	CapAssignRoles       Capability = "roles:assign"
	CapViewFinance       Capability = "finance:view"
	CapViewAnalytics     Capability = "analytics:view"
)

// NavEntry is one back-office navigation item.
type NavEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// navTable enumerates, per entry, exactly which roles may see it. No
// hierarchy is modeled: adding a role means touching every relevant row.
var navTable = []struct {
	entry NavEntry
	roles []Role
}{
	{NavEntry{"overview", "Overview", "/dashboard"}, []Role{RoleClient, RoleRestaurant, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"reservations", "Reservations", "/dashboard/reservations"}, []Role{RoleRestaurant, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"menu", "Menu", "/dashboard/menu"}, []Role{RoleRestaurant, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"stock", "Stock", "/dashboard/stock"}, []Role{RoleRestaurant, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"staff", "Staff", "/dashboard/staff"}, []Role{RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"packages", "Packages", "/dashboard/packages"}, []Role{RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"events", "Events", "/dashboard/events"}, []Role{RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"content", "Site Content", "/dashboard/content"}, []Role{RoleAdmin, RoleDev}},
	{NavEntry{"branding", "Branding", "/dashboard/branding"}, []Role{RoleAdmin, RoleDev}},
	{NavEntry{"customers", "Customers", "/dashboard/customers"}, []Role{RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"finance", "Finance", "/dashboard/finance"}, []Role{RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"shuttle", "Shuttle", "/dashboard/shuttle"}, []Role{RoleClient, RoleRestaurant, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"concierge", "Concierge", "/dashboard/concierge"}, []Role{RoleClient, RoleManager, RoleAdmin, RoleDev}},
	{NavEntry{"analytics", "Analytics", "/dashboard/analytics"}, []Role{RoleAdmin, RoleDev}},
}

var capTable = map[Role][]Capability{
	RoleClient: {CapBookReservation, CapPrintPass},
	RoleRestaurant: {
		CapBookReservation, CapPrintPass, CapManageReservation,
		CapManageMenu, CapManageStock,
	},
	RoleManager: {
		CapBookReservation, CapPrintPass, CapManageReservation,
		CapManageMenu, CapManageStock, CapManageStaff, CapManagePackages,
		CapManageEvents, CapManageCustomers, CapViewFinance,
	},
	RoleAdmin: {
		CapBookReservation, CapPrintPass, CapManageReservation,
		CapManageMenu, CapManageStock, CapManageStaff, CapManagePackages,
		CapManageEvents, CapManageCustomers, CapManageContent,
		CapAssignRoles, CapViewFinance, CapViewAnalytics,
	},
	RoleDev: {
		CapBookReservation, CapPrintPass, CapManageReservation,
		CapManageMenu, CapManageStock, CapManageStaff, CapManagePackages,
		CapManageEvents, CapManageCustomers, CapManageContent,
		CapAssignRoles, CapViewFinance, CapViewAnalytics,
	},
}

// NavigationFor returns the navigation entries visible to the role, in table
// order.
func NavigationFor(role Role) []NavEntry {
	var out []NavEntry
	for _, row := range navTable {
		for _, allowed := range row.roles {
			if allowed == role {
				out = append(out, row.entry)
				break
			}
		}
	}
	return out
}

// CapabilitiesFor returns the capability set for the role.
func CapabilitiesFor(role Role) []Capability {
	return capTable[role]
}

// Can reports whether the role holds the capability.
func Can(role Role, cap Capability) bool {
	for _, c := range capTable[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// DashboardVariant selects which dashboard rendering branch a role gets.
type DashboardVariant string

const (
	DashClient     DashboardVariant = "client"
	DashRestaurant DashboardVariant = "restaurant"
	DashManager    DashboardVariant = "manager"
	DashAnalytics  DashboardVariant = "analytics"
	DashDefault    DashboardVariant = "default"
)

// DashboardFor branches entirely on role: five mutually exclusive variants.
func DashboardFor(role Role) DashboardVariant {
	switch role {
	case RoleClient:
		return DashClient
	case RoleRestaurant:
		return DashRestaurant
	case RoleManager:
		return DashManager
	case RoleAdmin, RoleDev:
		return DashAnalytics
	default:
		return DashDefault
	}
}
