// Package client is a small HTTP client for the telemetry API, used by the
// load generator and by operators' scripts.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/snapshot"
)

const DefaultTimeout = 30 * time.Second

// APIError is a non 2xx answer from the server.
type APIError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
}

func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	httpClient *resty.Client
}

func New(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() == http.StatusServiceUnavailable
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{httpClient: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.httpClient.R().SetContext(ctx).SetError(&APIError{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil || apiErr.Detail == "" {
			apiErr = &APIError{Detail: http.StatusText(resp.StatusCode())}
		}
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/api/users/create", user, &out)
	return out, err
}

func (c *Client) CreateDevice(ctx context.Context, device models.Device) (models.Device, error) {
	var out models.Device
	err := c.do(ctx, http.MethodPost, "/api/devices/create", device, &out)
	return out, err
}

// CreateEvent posts one record of kind. record is anything that encodes
// to the kind's JSON shape.
func (c *Client) CreateEvent(ctx context.Context, kind models.Kind, record any) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/%s/create", kind), record, nil)
}

func (c *Client) LatestSnapshot(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error) {
	var out models.HomeStateSnapshot
	err := c.do(ctx, http.MethodGet, "/api/home-state-snapshots/latest/"+userID.String(), nil, &out)
	return out, err
}

func (c *Client) RebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (snapshot.Report, error) {
	var out snapshot.Report
	path := "/api/home-state-snapshots/rebuild/" + userID.String()
	if since != nil {
		path += "?since=" + common.FormatTimestamp(*since)
	}
	err := c.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}
