package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleCaregiver  UserRole = "caregiver"
	RoleCareTarget UserRole = "care_target"
	RoleFamily     UserRole = "family"
	RoleUser       UserRole = "user"
)

var UserRoles = []string{
	string(RoleAdmin), string(RoleCaregiver), string(RoleCareTarget), string(RoleFamily), string(RoleUser),
}

type User struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	UserRole    UserRole  `gorm:"size:20;not null;index" json:"user_role"`
	UserName    string    `gorm:"not null" json:"user_name"`
	Email       *string   `json:"email,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

type Device struct {
	DeviceID      string     `gorm:"primaryKey;size:64" json:"device_id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	LocationLabel *string    `json:"location_label,omitempty"`
	InstalledAt   *time.Time `json:"installed_at,omitempty"`
}

func (Device) TableName() string { return "devices" }

func (d Device) Label() string {
	if d.LocationLabel == nil {
		return ""
	}
	return *d.LocationLabel
}

type RelationshipStatus string

const (
	RelationshipActive  RelationshipStatus = "active"
	RelationshipPending RelationshipStatus = "pending"
)

// UserRelationship is a directed edge, subject is the monitored person and
// target the related user (caregiver, family).
type UserRelationship struct {
	RelationshipID   uuid.UUID          `gorm:"type:uuid;primaryKey" json:"relationship_id"`
	SubjectUserID    uuid.UUID          `gorm:"type:uuid;index;not null" json:"subject_user_id"`
	TargetUserID     uuid.UUID          `gorm:"type:uuid;index;not null" json:"target_user_id"`
	RelationshipType string             `gorm:"size:32;not null" json:"relationship_type"`
	Status           RelationshipStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}

func (UserRelationship) TableName() string { return "user_relationships" }

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type UserProfile struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *Gender    `gorm:"size:10" json:"gender,omitempty"`
	Address          *string    `json:"address,omitempty"`
	AddressDetail    *string    `json:"address_detail,omitempty"`
	MedicalHistory   *string    `json:"medical_history,omitempty"`
	SignificantNotes *string    `json:"significant_notes,omitempty"`
	CurrentStatus    *string    `json:"current_status,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Caregiver is a target of an active relationship joined with its user row.
type Caregiver struct {
	User
	RelationshipType string `json:"relationship_type"`
}
