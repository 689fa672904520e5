package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGorm opens a GORM connection backed by sqlmock
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	// GORM pings once while opening the connection
	mock.ExpectPing()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectPing()

	db := &Database{DB: gormDB}
	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	gormDB, mock, _ := newMockGorm(t)

	mock.ExpectClose()

	db := &Database{DB: gormDB}
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionManager_Commit(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	type record struct {
		ID   uint
		Name string
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "records"`).
		WithArgs("paid").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	manager := NewGormTransactionManager(gormDB)
	err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return dbFromContext(ctx, gormDB).Create(&record{Name: "paid"}).Error
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionManager_RollbackOnError(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	manager := NewGormTransactionManager(gormDB)
	err := manager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionManager_NestedCallJoinsTransaction(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()

	// A single BEGIN/COMMIT pair even though WithinTransaction is called twice
	mock.ExpectBegin()
	mock.ExpectCommit()

	manager := NewGormTransactionManager(gormDB)
	var outerTx, innerTx *gorm.DB
	err := manager.WithinTransaction(context.Background(), func(outer context.Context) error {
		outerTx = txFromContext(outer)
		return manager.WithinTransaction(outer, func(inner context.Context) error {
			innerTx = txFromContext(inner)
			return nil
		})
	})

	require.NoError(t, err)
	require.NotNil(t, outerTx)
	assert.Same(t, outerTx, innerTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBFromContext(t *testing.T) {
	gormDB, _, mockDB := newMockGorm(t)
	defer mockDB.Close()

	t.Run("falls back to connection without transaction", func(t *testing.T) {
		got := dbFromContext(context.Background(), gormDB)
		assert.Same(t, gormDB, got)
	})

	t.Run("prefers transaction carried by context", func(t *testing.T) {
		tx := gormDB.Session(&gorm.Session{})
		ctx := context.WithValue(context.Background(), txContextKey{}, tx)
		got := dbFromContext(ctx, gormDB)
		assert.Same(t, tx, got)
	})
}
