package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moneyapp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestDeleteUserCascadeCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "transactions" WHERE owner_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(tx Store) error {
		n, err := tx.Transactions().DeleteByOwner(context.Background(), 7)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(2), n)
		return tx.Users().Delete(context.Background(), 7)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserCascadeRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "transactions"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx Store) error {
		if _, err := tx.Transactions().DeleteByOwner(context.Background(), 7); err != nil {
			return err
		}
		return tx.Users().Delete(context.Background(), 7)
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissingRow(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewUserRepository(db).Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := NewUserRepository(db).GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := NewUserRepository(db).Create(context.Background(), &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "digest",
		IsActive:     true,
		Role:         models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionMissingOwner(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "transactions"`)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"transactions\" violates foreign key constraint"})

	err := NewTransactionRepository(db).Create(context.Background(), &models.Transaction{
		Category:    models.CategoryFood,
		Type:        models.TypeExpense,
		Amount:      5,
		Description: "lunch today",
		Date:        models.NewDate(2025, 1, 7),
		OwnerID:     42,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionScopedToOwner(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1 AND owner_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}))

	owner := uint(8)
	_, err := NewTransactionRepository(db).GetByID(context.Background(), 3, &owner)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransactionOtherOwner(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "transactions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewTransactionRepository(db).Update(context.Background(), &models.Transaction{
		ID:          3,
		OwnerID:     8,
		Category:    models.CategoryFood,
		Type:        models.TypeExpense,
		Amount:      1,
		Description: "snack",
		Date:        models.NewDate(2025, 1, 7),
	})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
