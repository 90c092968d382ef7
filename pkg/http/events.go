package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/iot"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type eventHandlers[T models.Event] struct {
	rs  *RestfulServer
	svc iot.IEvent[T]
}

// registerEventRoutes mounts the uniform record routes of one kind under
// /api/<kind>.
func registerEventRoutes[T models.Event](rs *RestfulServer, api *gin.RouterGroup, svc iot.IEvent[T]) {
	h := &eventHandlers[T]{rs: rs, svc: svc}

	g := api.Group("/" + string(svc.Kind()))
	g.POST("/create", h.create)
	g.GET("/list", h.list)
	g.GET("/:device_id/latest", h.latest)
	g.GET("/:device_id/statistics", h.statistics)
	g.GET("/:device_id/alerts", h.alerts)
	g.GET("/:device_id/:timestamp", h.get)
	g.PUT("/:device_id/:timestamp", h.update)
	g.DELETE("/:device_id/:timestamp", h.delete)
}

func (h *eventHandlers[T]) create(c *gin.Context) {
	var rec T
	if err := decodeBody(c, &rec); err != nil {
		respondError(c, err)
		return
	}

	if !h.rs.CheckDeviceLimiter(rec.Key().DeviceID) {
		tooManyRequests(c)
		return
	}

	stored, err := h.svc.Create(c.Request.Context(), &rec)
	respond(c, http.StatusCreated, stored, err)
}

func (h *eventHandlers[T]) listQuery(c *gin.Context, deviceID string) (models.ListQuery, error) {
	start, end, err := timeRangeQuery(c)
	if err != nil {
		return models.ListQuery{}, err
	}
	limit, err := countQuery(c, "limit")
	if err != nil {
		return models.ListQuery{}, err
	}
	return models.ListQuery{DeviceID: deviceID, Start: start, End: end, Limit: limit}, nil
}

func (h *eventHandlers[T]) list(c *gin.Context) {
	q, err := h.listQuery(c, c.Query("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	records, err := h.svc.List(c.Request.Context(), q)
	respond(c, http.StatusOK, records, err)
}

func (h *eventHandlers[T]) latest(c *gin.Context) {
	rec, err := h.svc.Latest(c.Request.Context(), c.Param("device_id"))
	respond(c, http.StatusOK, rec, err)
}

func (h *eventHandlers[T]) get(c *gin.Context) {
	t, err := timeParam(c, "timestamp")
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), c.Param("device_id"), t)
	respond(c, http.StatusOK, rec, err)
}

func (h *eventHandlers[T]) update(c *gin.Context) {
	t, err := timeParam(c, "timestamp")
	if err != nil {
		respondError(c, err)
		return
	}
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), c.Param("device_id"), t, patch)
	respond(c, http.StatusOK, rec, err)
}

func (h *eventHandlers[T]) delete(c *gin.Context) {
	t, err := timeParam(c, "timestamp")
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, h.svc.Delete(c.Request.Context(), c.Param("device_id"), t))
}

func (h *eventHandlers[T]) statistics(c *gin.Context) {
	q, err := h.listQuery(c, c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.svc.Statistics(c.Request.Context(), q)
	respond(c, http.StatusOK, stats, err)
}

func (h *eventHandlers[T]) alerts(c *gin.Context) {
	q, err := h.listQuery(c, c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var threshold *float64
	if v := c.Query("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(c, common.Invalid("threshold must be a number"))
			return
		}
		threshold = &f
	}
	alerts, err := h.svc.Alerts(c.Request.Context(), q, threshold)
	respond(c, http.StatusOK, alerts, err)
}
