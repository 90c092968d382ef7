package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
)

const DefaultRequestTimeout = 30 * time.Second

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
	RequestTimeout   time.Duration
}

// NewRestfulServer builds an engine with the service middleware chain and
// every route registered. A nil limiter store disables rate limiting.
func NewRestfulServer(i *iot.IOT, limiterStore *iot.RateLimiterStore, timeout time.Duration) *RestfulServer {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	engine := gin.New()
	rs := &RestfulServer{
		Server:           engine,
		Iot:              i,
		RateLimiterStore: limiterStore,
		RequestTimeout:   timeout,
	}
	engine.Use(AccessLog(), Recovery(), Timeout(timeout))
	rs.Setup()
	return rs
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) bool {
	if rs.RateLimiterStore == nil {
		return false
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
	return true
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/health", rs.HealthCheck)
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.NoRoute(func(c *gin.Context) { c.JSON(404, gin.H{"detail": "not found"}) })

	api := rs.Server.Group("/api")

	e := rs.Iot.Events
	registerEventRoutes(rs, api, e.CDS)
	registerEventRoutes(rs, api, e.DHT)
	registerEventRoutes(rs, api, e.Flame)
	registerEventRoutes(rs, api, e.IMU)
	registerEventRoutes(rs, api, e.LoadCell)
	registerEventRoutes(rs, api, e.MQ5)
	registerEventRoutes(rs, api, e.MQ7)
	registerEventRoutes(rs, api, e.RFID)
	registerEventRoutes(rs, api, e.Sound)
	registerEventRoutes(rs, api, e.TCRT5000)
	registerEventRoutes(rs, api, e.Ultrasonic)
	registerEventRoutes(rs, api, e.EdgeFlame)
	registerEventRoutes(rs, api, e.EdgePIR)
	registerEventRoutes(rs, api, e.EdgeReed)
	registerEventRoutes(rs, api, e.EdgeTilt)
	registerEventRoutes(rs, api, e.Buzzer)
	registerEventRoutes(rs, api, e.IRTX)
	registerEventRoutes(rs, api, e.Relay)
	registerEventRoutes(rs, api, e.Servo)
	registerEventRoutes(rs, api, e.RTC)
	registerEventRoutes(rs, api, e.Button)
	registerEventRoutes(rs, api, e.Temperature)

	users := api.Group("/users")
	{
		users.POST("/create", rs.CreateUser)
		users.GET("/list", rs.ListUsers)
		users.GET("/role/:role", rs.ListUsersByRole)
		users.GET("/:user_id", rs.GetUser)
		users.PUT("/:user_id", rs.UpdateUser)
		users.DELETE("/:user_id", rs.DeleteUser)
	}

	devices := api.Group("/devices")
	{
		devices.POST("/create", rs.CreateDevice)
		devices.GET("/list", rs.ListDevices)
		devices.GET("/user/:user_id", rs.ListDevicesForUser)
		devices.GET("/:device_id", rs.GetDevice)
		devices.PUT("/:device_id", rs.UpdateDevice)
		devices.DELETE("/:device_id", rs.DeleteDevice)
		devices.POST("/:device_id/assign", rs.AssignDevice)
		devices.POST("/:device_id/unassign", rs.UnassignDevice)
		devices.POST("/:device_id/limiter", rs.PostLimiter)
	}

	relationships := api.Group("/user-relationships")
	{
		relationships.POST("/create", rs.CreateRelationship)
		relationships.GET("/list", rs.ListRelationships)
		relationships.GET("/caregivers/:user_id", rs.ListCaregivers)
		relationships.GET("/:relationship_id", rs.GetRelationship)
		relationships.PUT("/:relationship_id", rs.UpdateRelationship)
		relationships.DELETE("/:relationship_id", rs.DeleteRelationship)
	}

	profiles := api.Group("/user-profiles")
	{
		profiles.POST("/create/:user_id", rs.CreateProfile)
		profiles.GET("/gender/:gender", rs.ListProfilesByGender)
		profiles.GET("/age-range/:min_age/:max_age", rs.ListProfilesByAgeRange)
		profiles.GET("/:user_id", rs.GetProfile)
		profiles.PUT("/:user_id", rs.UpdateProfile)
		profiles.DELETE("/:user_id", rs.DeleteProfile)
	}

	snapshots := api.Group("/home-state-snapshots")
	{
		snapshots.POST("/create", rs.CreateSnapshot)
		snapshots.GET("/list", rs.ListSnapshots)
		snapshots.GET("/latest/:user_id", rs.LatestSnapshot)
		snapshots.GET("/user/:user_id", rs.SnapshotsForUser)
		snapshots.GET("/time-range/:user_id", rs.SnapshotRange)
		snapshots.GET("/alert-level/:user_id/:level", rs.SnapshotsByAlertLevel)
		snapshots.GET("/environmental-alerts/:user_id", rs.EnvironmentalAlerts)
		snapshots.GET("/export/:user_id", rs.ExportSnapshots)
		snapshots.POST("/rebuild", rs.RebuildAll)
		snapshots.POST("/rebuild/:user_id", rs.RebuildUser)
		snapshots.GET("/:time/:user_id", rs.GetSnapshot)
		snapshots.PUT("/:time/:user_id", rs.UpdateSnapshot)
		snapshots.DELETE("/:time/:user_id", rs.DeleteSnapshot)
		snapshots.PUT("/:time/:user_id/alert-level", rs.UpdateSnapshotAlertLevel)
		snapshots.POST("/:time/:user_id/action-log", rs.AppendActionLog)
	}
}
