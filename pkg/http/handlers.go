package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) CreateUser(c *gin.Context) {
	var input models.User
	if err := decodeBody(c, &input); err != nil {
		respondError(c, err)
		return
	}
	user, err := rs.Iot.User.Create(c.Request.Context(), &input)
	respond(c, http.StatusCreated, user, err)
}

func (rs *RestfulServer) listUsers(c *gin.Context, role string) {
	page, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	users, err := rs.Iot.User.List(c.Request.Context(), role, page, size)
	respond(c, http.StatusOK, users, err)
}

func (rs *RestfulServer) ListUsers(c *gin.Context) {
	rs.listUsers(c, c.Query("role"))
}

func (rs *RestfulServer) ListUsersByRole(c *gin.Context) {
	rs.listUsers(c, c.Param("role"))
}

func (rs *RestfulServer) GetUser(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := rs.Iot.User.Get(c.Request.Context(), id)
	respond(c, http.StatusOK, user, err)
}

func (rs *RestfulServer) UpdateUser(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := rs.Iot.User.Update(c.Request.Context(), id, patch)
	respond(c, http.StatusOK, user, err)
}

func (rs *RestfulServer) DeleteUser(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, rs.Iot.User.Delete(c.Request.Context(), id))
}

func (rs *RestfulServer) CreateDevice(c *gin.Context) {
	var input models.Device
	if err := decodeBody(c, &input); err != nil {
		respondError(c, err)
		return
	}
	device, err := rs.Iot.Device.Create(c.Request.Context(), &input)
	respond(c, http.StatusCreated, device, err)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	page, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	devices, err := rs.Iot.Device.List(c.Request.Context(), page, size)
	respond(c, http.StatusOK, devices, err)
}

func (rs *RestfulServer) ListDevicesForUser(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	devices, err := rs.Iot.Device.ForUser(c.Request.Context(), id)
	respond(c, http.StatusOK, devices, err)
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	device, err := rs.Iot.Device.Get(c.Request.Context(), c.Param("device_id"))
	respond(c, http.StatusOK, device, err)
}

func (rs *RestfulServer) UpdateDevice(c *gin.Context) {
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	device, err := rs.Iot.Device.Update(c.Request.Context(), c.Param("device_id"), patch)
	respond(c, http.StatusOK, device, err)
}

func (rs *RestfulServer) DeleteDevice(c *gin.Context) {
	respondDeleted(c, rs.Iot.Device.Delete(c.Request.Context(), c.Param("device_id")))
}

type AssignRequest struct {
	UserID string `json:"user_id"`
}

var assignRequestSchema = z.Struct(z.Shape{
	"UserID": z.String().Required().UUID(),
})

func (rs *RestfulServer) AssignDevice(c *gin.Context) {
	var req AssignRequest
	if err := decodeBody(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if issues := assignRequestSchema.Validate(&req); len(issues) > 0 {
		respondError(c, common.Invalid("user_id: must be a UUID"))
		return
	}
	userID := uuid.MustParse(req.UserID)

	device, err := rs.Iot.Device.Assign(c.Request.Context(), c.Param("device_id"), userID)
	respond(c, http.StatusOK, device, err)
}

func (rs *RestfulServer) UnassignDevice(c *gin.Context) {
	device, err := rs.Iot.Device.Unassign(c.Request.Context(), c.Param("device_id"))
	respond(c, http.StatusOK, device, err)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required().GT(0),
	"burst": z.Int().Required().GT(0),
})

// PostLimiter overrides the ingest bucket of one device.
func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if issues := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); len(issues) > 0 {
		respondError(c, common.Invalid("rate and burst must be positive numbers"))
		return
	}

	if !rs.SetLimiter(deviceID, req.Rate, req.Burst) {
		respondError(c, common.Conflict("rate limiting is disabled"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_id": deviceID, "rate": req.Rate, "burst": req.Burst})
}

func (rs *RestfulServer) CreateRelationship(c *gin.Context) {
	var input models.UserRelationship
	if err := decodeBody(c, &input); err != nil {
		respondError(c, err)
		return
	}
	rel, err := rs.Iot.Relationship.Create(c.Request.Context(), &input)
	respond(c, http.StatusCreated, rel, err)
}

func (rs *RestfulServer) ListRelationships(c *gin.Context) {
	subject, err := optionalUUIDQuery(c, "subject_user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	target, err := optionalUUIDQuery(c, "target_user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	page, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rels, err := rs.Iot.Relationship.List(c.Request.Context(), subject, target, page, size)
	respond(c, http.StatusOK, rels, err)
}

func (rs *RestfulServer) ListCaregivers(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	caregivers, err := rs.Iot.Relationship.Caregivers(c.Request.Context(), id)
	respond(c, http.StatusOK, caregivers, err)
}

func (rs *RestfulServer) GetRelationship(c *gin.Context) {
	id, err := uuidParam(c, "relationship_id")
	if err != nil {
		respondError(c, err)
		return
	}
	rel, err := rs.Iot.Relationship.Get(c.Request.Context(), id)
	respond(c, http.StatusOK, rel, err)
}

func (rs *RestfulServer) UpdateRelationship(c *gin.Context) {
	id, err := uuidParam(c, "relationship_id")
	if err != nil {
		respondError(c, err)
		return
	}
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rel, err := rs.Iot.Relationship.Update(c.Request.Context(), id, patch)
	respond(c, http.StatusOK, rel, err)
}

func (rs *RestfulServer) DeleteRelationship(c *gin.Context) {
	id, err := uuidParam(c, "relationship_id")
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, rs.Iot.Relationship.Delete(c.Request.Context(), id))
}

func (rs *RestfulServer) CreateProfile(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var input models.UserProfile
	if err := decodeBody(c, &input); err != nil {
		respondError(c, err)
		return
	}
	profile, err := rs.Iot.Profile.Create(c.Request.Context(), id, &input)
	respond(c, http.StatusCreated, profile, err)
}

func (rs *RestfulServer) GetProfile(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := rs.Iot.Profile.Get(c.Request.Context(), id)
	respond(c, http.StatusOK, profile, err)
}

func (rs *RestfulServer) UpdateProfile(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := rs.Iot.Profile.Update(c.Request.Context(), id, patch)
	respond(c, http.StatusOK, profile, err)
}

func (rs *RestfulServer) DeleteProfile(c *gin.Context) {
	id, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, rs.Iot.Profile.Delete(c.Request.Context(), id))
}

func (rs *RestfulServer) ListProfilesByGender(c *gin.Context) {
	profiles, err := rs.Iot.Profile.ByGender(c.Request.Context(), c.Param("gender"))
	respond(c, http.StatusOK, profiles, err)
}

func (rs *RestfulServer) ListProfilesByAgeRange(c *gin.Context) {
	minAge, err := intParam(c, "min_age")
	if err != nil {
		respondError(c, err)
		return
	}
	maxAge, err := intParam(c, "max_age")
	if err != nil {
		respondError(c, err)
		return
	}
	profiles, err := rs.Iot.Profile.ByAgeRange(c.Request.Context(), minAge, maxAge)
	respond(c, http.StatusOK, profiles, err)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	if err := rs.Iot.Db.Health(c.Request.Context()); err != nil {
		serverLogger().Error("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "detail": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
