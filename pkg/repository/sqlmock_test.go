package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

func setupMockPostgres(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	common.SetTestLoggerNop()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	return mock, conn
}

func TestStorageErrorOnQuery(t *testing.T) {
	mock, conn := setupMockPostgres(t)
	repo := NewEventRepository[models.SensorRawMQ5](conn)

	mock.ExpectQuery(`SELECT \* FROM "sensor_raw_mq5"`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.Latest(t.Context(), "K-MQ5")
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlushBatchRollbackOnPostgres(t *testing.T) {
	mock, conn := setupMockPostgres(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectBegin()
	mock.ExpectRollback()

	rows := []models.HomeStateSnapshot{{UserID: uuid.New(), AlertLevel: models.AlertNormal}}
	err := repo.FlushBatch(t.Context(), rows, false, func(tx *gorm.DB) error {
		return errors.New("side insert failed")
	})
	assert.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTruncateQuotesTableOnPostgres(t *testing.T) {
	mock, conn := setupMockPostgres(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE "home_state_snapshots"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Truncate(t.Context()))
	require.NoError(t, mock.ExpectationsWereMet())
}
