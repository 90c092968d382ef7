package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (rs *RestfulServer) CreateSnapshot(c *gin.Context) {
	var input models.HomeStateSnapshot
	if err := decodeBody(c, &input); err != nil {
		respondError(c, err)
		return
	}
	snap, err := rs.Iot.Snapshot.Create(c.Request.Context(), &input)
	respond(c, http.StatusCreated, snap, err)
}

func (rs *RestfulServer) ListSnapshots(c *gin.Context) {
	page, size, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := rs.Iot.Snapshot.List(c.Request.Context(), page, size)
	respond(c, http.StatusOK, result, err)
}

func (rs *RestfulServer) LatestSnapshot(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := rs.Iot.Snapshot.Latest(c.Request.Context(), userID)
	respond(c, http.StatusOK, snap, err)
}

func (rs *RestfulServer) SnapshotsForUser(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := countQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	snaps, err := rs.Iot.Snapshot.ForUser(c.Request.Context(), userID, limit)
	respond(c, http.StatusOK, snaps, err)
}

func (rs *RestfulServer) SnapshotRange(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	start, end, err := timeRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	snaps, err := rs.Iot.Snapshot.Range(c.Request.Context(), userID, start, end)
	respond(c, http.StatusOK, snaps, err)
}

func (rs *RestfulServer) SnapshotsByAlertLevel(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := countQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}
	snaps, err := rs.Iot.Snapshot.ByAlertLevel(c.Request.Context(), userID, c.Param("level"), limit)
	respond(c, http.StatusOK, snaps, err)
}

func (rs *RestfulServer) EnvironmentalAlerts(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	start, end, err := timeRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	alerts, err := rs.Iot.Snapshot.EnvironmentalAlerts(c.Request.Context(), userID, start, end)
	respond(c, http.StatusOK, alerts, err)
}

// ExportSnapshots renders the workbook in memory first so a failure can
// still be answered with JSON.
func (rs *RestfulServer) ExportSnapshots(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	start, end, err := timeRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := rs.Iot.Snapshot.Export(c.Request.Context(), userID, start, end, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="home_state_%s.xlsx"`, userID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (rs *RestfulServer) RebuildAll(c *gin.Context) {
	report, err := rs.Iot.Snapshot.RebuildAll(c.Request.Context())
	respond(c, http.StatusOK, report, err)
}

func (rs *RestfulServer) RebuildUser(c *gin.Context) {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	since, err := optionalTimeQuery(c, "since")
	if err != nil {
		respondError(c, err)
		return
	}
	report, err := rs.Iot.Snapshot.RebuildUser(c.Request.Context(), userID, since)
	respond(c, http.StatusOK, report, err)
}

func snapshotKey(c *gin.Context) (time.Time, uuid.UUID, error) {
	t, err := timeParam(c, "time")
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}
	userID, err := uuidParam(c, "user_id")
	return t, userID, err
}

func (rs *RestfulServer) GetSnapshot(c *gin.Context) {
	t, userID, err := snapshotKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := rs.Iot.Snapshot.Get(c.Request.Context(), t, userID)
	respond(c, http.StatusOK, snap, err)
}

func (rs *RestfulServer) UpdateSnapshot(c *gin.Context) {
	t, userID, err := snapshotKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	patch, err := decodePatch(c)
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := rs.Iot.Snapshot.Update(c.Request.Context(), t, userID, patch)
	respond(c, http.StatusOK, snap, err)
}

func (rs *RestfulServer) UpdateSnapshotAlertLevel(c *gin.Context) {
	t, userID, err := snapshotKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var reason *string
	if v, ok := c.GetQuery("reason"); ok {
		reason = &v
	}
	snap, err := rs.Iot.Snapshot.UpdateAlertLevel(c.Request.Context(), t, userID, c.Query("alert_level"), reason)
	respond(c, http.StatusOK, snap, err)
}

func (rs *RestfulServer) AppendActionLog(c *gin.Context) {
	t, userID, err := snapshotKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var entry models.ActionLogEntry
	if err := decodeBody(c, &entry); err != nil {
		respondError(c, err)
		return
	}
	snap, err := rs.Iot.Snapshot.AppendActionLog(c.Request.Context(), t, userID, entry)
	respond(c, http.StatusOK, snap, err)
}

func (rs *RestfulServer) DeleteSnapshot(c *gin.Context) {
	t, userID, err := snapshotKey(c)
	if err != nil {
		respondError(c, err)
		return
	}
	respondDeleted(c, rs.Iot.Snapshot.Delete(c.Request.Context(), t, userID))
}
