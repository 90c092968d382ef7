package repository

import "gorm.io/gorm"

// Store groups the entity repositories over one connection. Event kinds are
// built on demand with NewEventRepository.
type Store struct {
	DB            *gorm.DB
	Users         *UserRepository
	Devices       *DeviceRepository
	Relationships *RelationshipRepository
	Profiles      *ProfileRepository
	Snapshots     *SnapshotRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:            db,
		Users:         NewUserRepository(db),
		Devices:       NewDeviceRepository(db),
		Relationships: NewRelationshipRepository(db),
		Profiles:      NewProfileRepository(db),
		Snapshots:     NewSnapshotRepository(db),
	}
}
