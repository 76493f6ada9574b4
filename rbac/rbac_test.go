package rbac

import "testing"

// expectedNav enumerates, per role, the exact set of navigation keys that
// role may see. Mirrors the static table on purpose: a leak either way fails.
var expectedNav = map[Role][]string{
	RoleClient:     {"overview", "shuttle", "concierge"},
	RoleRestaurant: {"overview", "reservations", "menu", "stock", "shuttle"},
	RoleManager: {"overview", "reservations", "menu", "stock", "staff",
		"packages", "events", "customers", "finance", "shuttle", "concierge"},
	RoleAdmin: {"overview", "reservations", "menu", "stock", "staff",
		"packages", "events", "content", "branding", "customers", "finance",
		"shuttle", "concierge", "analytics"},
	RoleDev: {"overview", "reservations", "menu", "stock", "staff",
		"packages", "events", "content", "branding", "customers", "finance",
		"shuttle", "concierge", "analytics"},
}

func TestNavigationForMatchesEnumeratedSets(t *testing.T) {
	for role, want := range expectedNav {
		got := NavigationFor(role)
		if len(got) != len(want) {
			t.Errorf("%s: got %d entries, want %d (%v)", role, len(got), len(want), got)
			continue
		}
		for i, entry := range got {
			if entry.Key != want[i] {
				t.Errorf("%s: entry %d = %q, want %q", role, i, entry.Key, want[i])
			}
		}
	}
}

func TestNavigationNoLeakToUnlistedRole(t *testing.T) {
	for _, role := range AllRoles {
		allowed := map[string]bool{}
		for _, key := range expectedNav[role] {
			allowed[key] = true
		}
		for _, entry := range NavigationFor(role) {
			if !allowed[entry.Key] {
				t.Errorf("%s: entry %q leaked to unlisted role", role, entry.Key)
			}
		}
	}
}

func TestDashboardVariants(t *testing.T) {
	cases := []struct {
		role Role
		want DashboardVariant
	}{
		{RoleClient, DashClient},
		{RoleRestaurant, DashRestaurant},
		{RoleManager, DashManager},
		{RoleAdmin, DashAnalytics},
		{RoleDev, DashAnalytics},
		{Role("ghost"), DashDefault},
	}
	for _, c := range cases {
		if got := DashboardFor(c.role); got != c.want {
			t.Errorf("DashboardFor(%s) = %s, want %s", c.role, got, c.want)
		}
	}
}

func TestCapabilities(t *testing.T) {
	if !Can(RoleAdmin, CapAssignRoles) {
		t.Error("admin should assign roles")
	}
	if Can(RoleClient, CapManageMenu) {
		t.Error("client must not manage menu")
	}
	if Can(RoleRestaurant, CapViewFinance) {
		t.Error("restaurant must not view finance")
	}
	for _, role := range AllRoles {
		if !Can(role, CapBookReservation) {
			t.Errorf("%s should be able to book", role)
		}
	}
}

func TestValid(t *testing.T) {
	for _, role := range AllRoles {
		if !Valid(role) {
			t.Errorf("%s should be valid", role)
		}
	}
	if Valid(Role("superuser")) {
		t.Error("unknown role accepted")
	}
}
