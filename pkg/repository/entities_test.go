package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func TestUserListByRole(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	seedUser(t, s, models.RoleCareTarget)
	seedUser(t, s, models.RoleCaregiver)
	seedUser(t, s, models.RoleCaregiver)

	all, err := s.Users.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	caregivers, err := s.Users.List(ctx, string(models.RoleCaregiver), 10, 0)
	require.NoError(t, err)
	assert.Len(t, caregivers, 2)

	second, err := s.Users.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestUserReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	user := seedUser(t, s, models.RoleCareTarget)
	n, err := s.Users.References(ctx, user.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)

	seedDevice(t, s, "PIR_1", &user.UserID, "Entrance - PIR")
	n, err = s.Users.References(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeviceAssignLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u1 := seedUser(t, s, models.RoleCareTarget)
	u2 := seedUser(t, s, models.RoleCareTarget)
	seedDevice(t, s, "D1", nil, "")

	require.NoError(t, s.Devices.Assign(ctx, "D1", u1.UserID))
	require.NoError(t, s.Devices.Assign(ctx, "D1", u2.UserID))

	got, err := s.Devices.Get(ctx, "D1")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, u2.UserID, *got.UserID)

	require.NoError(t, s.Devices.Unassign(ctx, "D1"))
	got, err = s.Devices.Get(ctx, "D1")
	require.NoError(t, err)
	assert.Nil(t, got.UserID)

	assert.ErrorIs(t, s.Devices.Assign(ctx, "missing", u1.UserID), ErrNotFound)
}

func TestUsersWithDevices(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u1 := seedUser(t, s, models.RoleCareTarget)
	u2 := seedUser(t, s, models.RoleCareTarget)
	seedUser(t, s, models.RoleCareTarget)
	seedDevice(t, s, "A", &u1.UserID, "")
	seedDevice(t, s, "B", &u1.UserID, "")
	seedDevice(t, s, "C", &u2.UserID, "")
	seedDevice(t, s, "D", nil, "")

	ids, err := s.Devices.UsersWithDevices(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{u1.UserID, u2.UserID}, ids)
	assert.True(t, ids[0].String() < ids[1].String())

	mine, err := s.Devices.ForUser(ctx, u1.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "A", mine[0].DeviceID)
}

func TestCaregivers(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	subject := seedUser(t, s, models.RoleCareTarget)
	nurse := seedUser(t, s, models.RoleCaregiver)
	pending := seedUser(t, s, models.RoleFamily)

	for _, rel := range []models.UserRelationship{
		{RelationshipID: uuid.New(), SubjectUserID: subject.UserID, TargetUserID: nurse.UserID, RelationshipType: "caregiver", Status: models.RelationshipActive},
		{RelationshipID: uuid.New(), SubjectUserID: subject.UserID, TargetUserID: pending.UserID, RelationshipType: "family", Status: models.RelationshipPending},
	} {
		require.NoError(t, s.Relationships.Create(ctx, &rel))
	}

	got, err := s.Relationships.Caregivers(ctx, subject.UserID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, nurse.UserID, got[0].UserID)
	assert.Equal(t, "caregiver", got[0].RelationshipType)

	bySubject, err := s.Relationships.List(ctx, &subject.UserID, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, bySubject, 2)
}

func TestProfilesByAgeAndGender(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()
	now := at("2025-08-23T00:00:00Z")

	ages := map[int]models.Gender{80: models.GenderFemale, 65: models.GenderMale, 30: models.GenderFemale}
	for age, gender := range ages {
		user := seedUser(t, s, models.RoleCareTarget)
		profile := models.UserProfile{
			UserID:      user.UserID,
			DateOfBirth: common.Ptr(now.AddDate(-age, 0, -1)),
			Gender:      common.Ptr(gender),
		}
		require.NoError(t, s.Profiles.Create(ctx, &profile))
	}

	elders, err := s.Profiles.ByAgeRange(ctx, 60, 85, now)
	require.NoError(t, err)
	assert.Len(t, elders, 2)

	women, err := s.Profiles.ByGender(ctx, models.GenderFemale)
	require.NoError(t, err)
	assert.Len(t, women, 2)

	_, err = s.Profiles.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
