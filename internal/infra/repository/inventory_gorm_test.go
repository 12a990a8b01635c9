package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockInventoryRepository(t *testing.T) (*InventoryGormRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewInventoryGormRepository(gormDB), mock, mockDB
}

const decreaseSQL = `UPDATE "products" SET "stock"=stock - \$1,"updated_at"=\$2 WHERE \(id = \$3 AND stock >= \$4\) AND "products"."deleted_at" IS NULL`

func TestInventory_DecreaseStockIfEnough(t *testing.T) {
	t.Run("decrements when stock is enough", func(t *testing.T) {
		r, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(decreaseSQL).
			WithArgs(int64(3), sqlmock.AnyArg(), "p-1", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := r.DecreaseStockIfEnough(context.Background(), "p-1", 3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports false when no row matched", func(t *testing.T) {
		r, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(decreaseSQL).
			WithArgs(int64(9), sqlmock.AnyArg(), "p-1", int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := r.DecreaseStockIfEnough(context.Background(), "p-1", 9)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates db errors", func(t *testing.T) {
		r, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(decreaseSQL).
			WillReturnError(errors.New("connection reset"))

		ok, err := r.DecreaseStockIfEnough(context.Background(), "p-1", 1)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
