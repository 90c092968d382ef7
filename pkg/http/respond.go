package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

const internalDetail = "internal server error"

func statusOf(kind common.ErrorKind) int {
	switch kind {
	case common.KindInvalid:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {detail} for err. Internal details stay in the log.
func respondError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	status := statusOf(kind)
	if status == http.StatusInternalServerError {
		serverLogger().Error("Internal error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"detail": internalDetail})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": common.MessageOf(err)})
}

func respond(c *gin.Context, status int, body any, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, body)
}

func respondDeleted(c *gin.Context, err error) {
	respond(c, http.StatusOK, gin.H{"deleted": true}, err)
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "rate limit exceeded"})
}

// decodeBody decodes the JSON body strictly, unknown keys are rejected.
func decodeBody(c *gin.Context, out any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return common.Invalid("cannot read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return common.Invalid("request body is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return common.Invalid("invalid request body: %v", err)
	}
	return nil
}

func decodePatch(c *gin.Context) (models.Patch, error) {
	var patch models.Patch
	if err := decodeBody(c, &patch); err != nil {
		return nil, err
	}
	return patch, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, common.Invalid("%s must be a UUID", name)
	}
	return id, nil
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, common.Invalid("%s must be a UUID", name)
	}
	return &id, nil
}

func timeParam(c *gin.Context, name string) (time.Time, error) {
	t, err := common.ParseTimestamp(c.Param(name))
	if err != nil {
		return time.Time{}, common.Invalid("%s must be an ISO-8601 timestamp", name)
	}
	return t, nil
}

func optionalTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := common.ParseTimestamp(v)
	if err != nil {
		return nil, common.Invalid("%s must be an ISO-8601 timestamp", name)
	}
	return &t, nil
}

func timeRangeQuery(c *gin.Context) (start, end *time.Time, err error) {
	if start, err = optionalTimeQuery(c, "start_time"); err != nil {
		return nil, nil, err
	}
	if end, err = optionalTimeQuery(c, "end_time"); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// countQuery reads limit, page or size. Absent gives 0 so the service applies
// its default, an explicit value must be >= 1.
func countQuery(c *gin.Context, name string) (int, error) {
	if _, ok := c.GetQuery(name); !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0, common.Invalid("%s must be an integer", name)
	}
	if n < 1 {
		return 0, common.Invalid("%s must be >= 1", name)
	}
	return n, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, common.Invalid("%s must be an integer", name)
	}
	return n, nil
}

func pageQuery(c *gin.Context) (page, size int, err error) {
	if page, err = countQuery(c, "page"); err != nil {
		return 0, 0, err
	}
	if size, err = countQuery(c, "size"); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}
