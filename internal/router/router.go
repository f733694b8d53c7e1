package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/config"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/handler"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/middleware"
)

// Handlers bundles every handler the API mounts so registration stays in one
// call from main.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Clients  *handler.ClientHandler
	Devices  *handler.DeviceHandler
	Queries  *handler.QueryHandler
	Lookups  *handler.LookupHandler
	Comments *handler.CommentHandler
}

// lookupPlural maps each lookup kind slug to the plural used in its GET path,
// e.g. /add-status/ + /get-statuses/ + /delete-status/.
var lookupPlural = map[string]string{
	"status":          "statuses",
	"cpu-type":        "cpu-types",
	"connection-type": "connection-types",
	"printer-feature": "printer-features",
	"division":        "divisions",
	"location":        "locations",
	"location-type":   "location-types",
	"parish":          "parishes",
	"role":            "roles",
}

// RegisterRoutes mounts the open endpoints: the health check and the token
// exchange.  Everything else requires a bearer token.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)
	e.POST("/token", h.Auth.Token)
}

// RegisterProtected mounts every authenticated endpoint behind JWT
// validation.  Read endpoints additionally sit behind the Redis response
// cache when one is configured.
func RegisterProtected(e *echo.Echo, h Handlers, secret string, users middleware.UserLookup,
	cacheCfg config.CacheConfig, rdb *redis.Client) {

	g := e.Group("", middleware.JWTAuth(secret, users))

	// identity
	g.POST("/create-user/", h.Users.CreateUser)
	g.DELETE("/delete-user/", h.Users.DeleteUser)
	g.GET("/users/me/", h.Auth.Me)
	g.PUT("/change-password/", h.Auth.ChangePassword)
	g.POST("/create-client/", h.Clients.CreateClient)
	g.DELETE("/delete-client/", h.Clients.DeleteClient)
	g.GET("/get-clients/", h.Clients.GetClients)

	// device catalog
	g.POST("/add-device/", h.Devices.AddDevice)
	g.POST("/add-laptop/", h.Devices.AddLaptop)
	g.POST("/add-tablet/", h.Devices.AddTablet)
	g.POST("/add-mouse-keyboard/", h.Devices.AddMouseKeyboard)
	g.POST("/add-printer/", h.Devices.AddPrinter)
	g.POST("/add-crav-equipment/", h.Devices.AddCRAVEquipment)
	g.GET("/get-item-sn/", h.Devices.GetItemBySerial)
	g.DELETE("/delete-item/", h.Devices.DeleteItem)
	g.PUT("/assign-device/", h.Devices.AssignDevice)
	g.POST("/unassign-item/", h.Devices.UnassignItem)
	g.PUT("/update-status/", h.Devices.UpdateStatus)

	// search, filters and reports; GETs are cacheable
	cached := middleware.ResponseCache(cacheCfg, rdb)
	g.GET("/get-items/", h.Queries.GetItems, cached)
	g.GET("/get-assigned-items/", h.Queries.GetAssignedItems, cached)
	g.POST("/filter-devices/", h.Queries.FilterDevices)
	g.GET("/filter-delivery-date/", h.Queries.FilterDeliveryDate, cached)
	g.GET("/filter-deployment-date/", h.Queries.FilterDeploymentDate, cached)
	g.GET("/get-all-locations/", h.Queries.GetAllLocations, cached)

	// lookup registries: one add/list/delete trio per kind
	for kind, plural := range lookupPlural {
		g.POST("/add-"+kind+"/", h.Lookups.Add(kind))
		g.GET("/get-"+plural+"/", h.Lookups.List(kind), cached)
		g.DELETE("/delete-"+kind+"/", h.Lookups.Delete(kind))
	}

	// comment log
	g.GET("/get-comments/", h.Comments.GetComments)
	g.POST("/add-comments/", h.Comments.AddComments)
	g.DELETE("/delete-comment/", h.Comments.DeleteComment)
}
