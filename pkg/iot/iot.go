//go:generate mockgen -source=iot.go -destination=mocks/mock_iot.go -package=mocks

package iot

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"liyu1981.xyz/eldercare-telemetry/pkg/db"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
	"liyu1981.xyz/eldercare-telemetry/pkg/repository"
	"liyu1981.xyz/eldercare-telemetry/pkg/snapshot"
)

type IEvent[T models.Event] interface {
	Kind() models.Kind
	Create(ctx context.Context, rec *T) (T, error)
	Get(ctx context.Context, deviceID string, t time.Time) (T, error)
	Latest(ctx context.Context, deviceID string) (T, error)
	List(ctx context.Context, q models.ListQuery) ([]T, error)
	Update(ctx context.Context, deviceID string, t time.Time, patch models.Patch) (T, error)
	Delete(ctx context.Context, deviceID string, t time.Time) error
	Statistics(ctx context.Context, q models.ListQuery) (models.Statistics, error)
	Alerts(ctx context.Context, q models.ListQuery, threshold *float64) ([]models.Exceedance[T], error)
}

type IUser interface {
	Create(ctx context.Context, user *models.User) (models.User, error)
	Get(ctx context.Context, id uuid.UUID) (models.User, error)
	List(ctx context.Context, role string, page, size int) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch models.Patch) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type IDevice interface {
	Create(ctx context.Context, device *models.Device) (models.Device, error)
	Get(ctx context.Context, deviceID string) (models.Device, error)
	List(ctx context.Context, page, size int) ([]models.Device, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]models.Device, error)
	Update(ctx context.Context, deviceID string, patch models.Patch) (models.Device, error)
	Delete(ctx context.Context, deviceID string) error
	Assign(ctx context.Context, deviceID string, userID uuid.UUID) (models.Device, error)
	Unassign(ctx context.Context, deviceID string) (models.Device, error)
}

type IRelationship interface {
	Create(ctx context.Context, rel *models.UserRelationship) (models.UserRelationship, error)
	Get(ctx context.Context, id uuid.UUID) (models.UserRelationship, error)
	List(ctx context.Context, subject, target *uuid.UUID, page, size int) ([]models.UserRelationship, error)
	Update(ctx context.Context, id uuid.UUID, patch models.Patch) (models.UserRelationship, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Caregivers(ctx context.Context, subject uuid.UUID) ([]models.Caregiver, error)
}

type IProfile interface {
	Create(ctx context.Context, userID uuid.UUID, profile *models.UserProfile) (models.UserProfile, error)
	Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error)
	Update(ctx context.Context, userID uuid.UUID, patch models.Patch) (models.UserProfile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	ByGender(ctx context.Context, gender string) ([]models.UserProfile, error)
	ByAgeRange(ctx context.Context, minAge, maxAge int) ([]models.UserProfile, error)
}

type ISnapshot interface {
	Create(ctx context.Context, snap *models.HomeStateSnapshot) (models.HomeStateSnapshot, error)
	Get(ctx context.Context, t time.Time, userID uuid.UUID) (models.HomeStateSnapshot, error)
	Latest(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error)
	ForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.HomeStateSnapshot, error)
	Range(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.HomeStateSnapshot, error)
	ByAlertLevel(ctx context.Context, userID uuid.UUID, level string, limit int) ([]models.HomeStateSnapshot, error)
	List(ctx context.Context, page, size int) (models.SnapshotPage, error)
	Update(ctx context.Context, t time.Time, userID uuid.UUID, patch models.Patch) (models.HomeStateSnapshot, error)
	UpdateAlertLevel(ctx context.Context, t time.Time, userID uuid.UUID, level string, reason *string) (models.HomeStateSnapshot, error)
	AppendActionLog(ctx context.Context, t time.Time, userID uuid.UUID, entry models.ActionLogEntry) (models.HomeStateSnapshot, error)
	Delete(ctx context.Context, t time.Time, userID uuid.UUID) error
	EnvironmentalAlerts(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]models.EnvironmentalAlert, error)
	Export(ctx context.Context, userID uuid.UUID, start, end *time.Time, w io.Writer) error
	RebuildAll(ctx context.Context) (snapshot.Report, error)
	RebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (snapshot.Report, error)
}

// Rebuilder runs the snapshot engine.
type Rebuilder interface {
	RebuildAll(ctx context.Context) (snapshot.Report, error)
	RebuildUser(ctx context.Context, userID uuid.UUID, since *time.Time) (snapshot.Report, error)
}

// LatestCache is the read side of the snapshot cache.
type LatestCache interface {
	snapshot.Publisher
	Latest(ctx context.Context, userID uuid.UUID) (models.HomeStateSnapshot, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type IOT struct {
	Db           db.DB
	Store        *repository.Store
	Events       *EventServices
	User         IUser
	Device       IDevice
	Relationship IRelationship
	Profile      IProfile
	Snapshot     ISnapshot
	Cache        LatestCache
	Rebuilder    Rebuilder
	LimiterStore *RateLimiterStore
	clock        func() time.Time
}

type ServiceOpts struct {
	User         IUser
	Device       IDevice
	Relationship IRelationship
	Profile      IProfile
	Snapshot     ISnapshot
	Cache        LatestCache
	Rebuilder    Rebuilder
	LimiterStore *RateLimiterStore
}

// New wires the default services over database.
func New(database *db.DB) *IOT {
	i := &IOT{
		Db:    *database,
		Store: repository.NewStore(database.Conn),
		clock: func() time.Time { return time.Now().UTC() },
	}
	i.Events = newEventServices(i)
	i.User = i.GetIUser()
	i.Device = i.GetIDevice()
	i.Relationship = i.GetIRelationship()
	i.Profile = i.GetIProfile()
	i.Snapshot = i.GetISnapshot()
	return i
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.User != nil {
		i.User = opts.User
	}
	if opts.Device != nil {
		i.Device = opts.Device
	}
	if opts.Relationship != nil {
		i.Relationship = opts.Relationship
	}
	if opts.Profile != nil {
		i.Profile = opts.Profile
	}
	if opts.Snapshot != nil {
		i.Snapshot = opts.Snapshot
	}
	if opts.Cache != nil {
		i.Cache = opts.Cache
	}
	if opts.Rebuilder != nil {
		i.Rebuilder = opts.Rebuilder
	}
	if opts.LimiterStore != nil {
		i.LimiterStore = opts.LimiterStore
	}
	return i
}

func (i *IOT) now() time.Time {
	return i.clock()
}
