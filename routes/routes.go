package routes

import (
	"net/http"

	"riviera/auth"
	"riviera/availability"
	"riviera/cms"
	"riviera/concierge"
	"riviera/customers"
	"riviera/dashboard"
	"riviera/events"
	"riviera/menu"
	"riviera/middleware"
	"riviera/packages"
	"riviera/profile"
	"riviera/ratelim"
	"riviera/rbac"
	"riviera/reservations"
	"riviera/shuttle"
	"riviera/staff"
	"riviera/stock"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/avatars/*filepath", http.Dir("static/avatars"))
	router.ServeFiles("/static/branding/*filepath", http.Dir("static/branding"))
	router.ServeFiles("/static/menupic/*filepath", http.Dir("static/menupic"))
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
	router.ServeFiles("/static/sectionpic/*filepath", http.Dir("static/sectionpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.POST("/api/profile/avatar", middleware.Authenticate(profile.UploadAvatar))

	router.GET("/api/users", middleware.RequireRole(rbac.CapAssignRoles, profile.ListUsers))
	router.PUT("/api/users/:userid/role", middleware.RequireRole(rbac.CapAssignRoles, profile.AssignRole))
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	// public booking form
	router.POST("/api/reservations", rl.Limit(reservations.CreateReservation))

	router.GET("/api/reservations", middleware.RequireRole(rbac.CapManageReservation, reservations.ListReservations))
	router.GET("/api/reservations/:id", middleware.RequireRole(rbac.CapManageReservation, reservations.GetReservation))
	router.PUT("/api/reservations/:id/status", middleware.RequireRole(rbac.CapManageReservation, reservations.UpdateStatus))
	router.DELETE("/api/reservations/:id", middleware.RequireRole(rbac.CapManageReservation, reservations.DeleteReservation))

	router.GET("/api/reservations/:id/pass", rl.Limit(reservations.PrintPass))
}

func AddAvailabilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/availability/:year/:month", rl.Limit(availability.GetMonth))
}

func AddShuttleRoutes(router *httprouter.Router) {
	router.GET("/api/shuttle/schedule", shuttle.GetSchedule)
	router.GET("/api/shuttle/position", shuttle.GetPosition)
	router.GET("/api/shuttle/live", shuttle.Live)
}

func AddConciergeRoutes(router *httprouter.Router, hub *concierge.Hub, rl *ratelim.RateLimiter) {
	router.POST("/api/concierge/message", rl.Limit(middleware.Authenticate(concierge.SendMessage)))
	router.GET("/api/concierge/log", middleware.Authenticate(concierge.GetLog))
	// the handler validates its own token query param
	router.GET("/ws/concierge/:room", concierge.WebSocketHandler(hub))
}

func AddPackageRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/packages", rl.Limit(packages.ListPackages))

	router.GET("/api/admin/packages", middleware.RequireRole(rbac.CapManagePackages, packages.ListAllPackages))
	router.POST("/api/admin/packages", middleware.RequireRole(rbac.CapManagePackages, packages.CreatePackage))
	router.PUT("/api/admin/packages/:id", middleware.RequireRole(rbac.CapManagePackages, packages.UpdatePackage))
	router.DELETE("/api/admin/packages/:id", middleware.RequireRole(rbac.CapManagePackages, packages.DeletePackage))
}

func AddMenuRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/menu", rl.Limit(menu.GetMenu))

	router.GET("/api/admin/menu", middleware.RequireRole(rbac.CapManageMenu, menu.ListProducts))
	router.POST("/api/admin/menu", middleware.RequireRole(rbac.CapManageMenu, menu.CreateProduct))
	router.PUT("/api/admin/menu/:id", middleware.RequireRole(rbac.CapManageMenu, menu.UpdateProduct))
	router.PUT("/api/admin/menu/:id/availability", middleware.RequireRole(rbac.CapManageMenu, menu.ToggleAvailability))
	router.DELETE("/api/admin/menu/:id", middleware.RequireRole(rbac.CapManageMenu, menu.DeleteProduct))
	router.POST("/api/admin/menu/:id/image", middleware.RequireRole(rbac.CapManageMenu, menu.UploadProductImage))
}

func AddStockRoutes(router *httprouter.Router) {
	router.GET("/api/admin/stock", middleware.RequireRole(rbac.CapManageStock, stock.ListStock))
	router.POST("/api/admin/stock", middleware.RequireRole(rbac.CapManageStock, stock.CreateItem))
	router.PUT("/api/admin/stock/:id", middleware.RequireRole(rbac.CapManageStock, stock.UpdateItem))
	router.PUT("/api/admin/stock/:id/quantity", middleware.RequireRole(rbac.CapManageStock, stock.AdjustQuantity))
	router.DELETE("/api/admin/stock/:id", middleware.RequireRole(rbac.CapManageStock, stock.DeleteItem))
}

func AddStaffRoutes(router *httprouter.Router) {
	router.GET("/api/admin/staff", middleware.RequireRole(rbac.CapManageStaff, staff.ListStaff))
	router.POST("/api/admin/staff", middleware.RequireRole(rbac.CapManageStaff, staff.CreateEmployee))
	router.PUT("/api/admin/staff/:id", middleware.RequireRole(rbac.CapManageStaff, staff.UpdateEmployee))
	router.PUT("/api/admin/staff/:id/active", middleware.RequireRole(rbac.CapManageStaff, staff.ToggleActive))
	router.DELETE("/api/admin/staff/:id", middleware.RequireRole(rbac.CapManageStaff, staff.DeleteEmployee))
}

func AddEventsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events", rl.Limit(events.GetUpcoming))

	router.GET("/api/admin/events", middleware.RequireRole(rbac.CapManageEvents, events.ListEvents))
	router.POST("/api/admin/events", middleware.RequireRole(rbac.CapManageEvents, events.CreateEvent))
	router.PUT("/api/admin/events/:id", middleware.RequireRole(rbac.CapManageEvents, events.UpdateEvent))
	router.PUT("/api/admin/events/:id/publish", middleware.RequireRole(rbac.CapManageEvents, events.TogglePublish))
	router.DELETE("/api/admin/events/:id", middleware.RequireRole(rbac.CapManageEvents, events.DeleteEvent))
	router.POST("/api/admin/events/:id/image", middleware.RequireRole(rbac.CapManageEvents, events.UploadEventImage))
}

func AddCmsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/sections", rl.Limit(cms.GetPublicSections))
	router.GET("/api/branding", rl.Limit(cms.GetBranding))

	router.GET("/api/admin/sections", middleware.RequireRole(rbac.CapManageContent, cms.ListSections))
	router.POST("/api/admin/sections", middleware.RequireRole(rbac.CapManageContent, cms.CreateSection))
	router.PUT("/api/admin/sections/:id", middleware.RequireRole(rbac.CapManageContent, cms.UpdateSection))
	router.PUT("/api/admin/sections/:id/visibility", middleware.RequireRole(rbac.CapManageContent, cms.ToggleVisibility))
	router.DELETE("/api/admin/sections/:id", middleware.RequireRole(rbac.CapManageContent, cms.DeleteSection))
	router.POST("/api/admin/sections/:id/image", middleware.RequireRole(rbac.CapManageContent, cms.UploadSectionImage))

	router.PUT("/api/admin/branding", middleware.RequireRole(rbac.CapManageContent, cms.UpdateBranding))
	router.POST("/api/admin/branding/:kind", middleware.RequireRole(rbac.CapManageContent, cms.UploadBrandingAsset))
}

func AddCustomerRoutes(router *httprouter.Router) {
	router.GET("/api/admin/customers", middleware.RequireRole(rbac.CapManageCustomers, customers.ListCustomers))
	router.GET("/api/admin/customers/:email", middleware.RequireRole(rbac.CapManageCustomers, customers.GetCustomer))
	router.PUT("/api/admin/customers/:email", middleware.RequireRole(rbac.CapManageCustomers, customers.AdjustCustomer))
}

func AddDashboardRoutes(router *httprouter.Router) {
	router.GET("/api/dashboard", middleware.Authenticate(dashboard.GetDashboard))
}
