package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"Inshpho/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var userColumns = []string{"id", "username", "email", "password_hash", "feedback", "created_at", "updated_at"}

func newGormRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gdb), mock
}

func TestGormCreateUser_Success(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateUser(context.Background(), &model.User{
		ID: "u-1", Username: "jane.doe", Email: "j@x.com", PasswordHash: "h",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'j@x.com' for key 'users.idx_users_email'"})

	err := repo.CreateUser(context.Background(), &model.User{ID: "u-1", Username: "jane.doe", Email: "j@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.False(t, errors.Is(err, ErrDuplicateUsername))
}

func TestGormCreateUser_DuplicateUsername(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'jane.doe' for key 'users.idx_users_username'"})

	err := repo.CreateUser(context.Background(), &model.User{ID: "u-1", Username: "jane.doe", Email: "j@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestGormCreateUser_OtherError(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("INSERT INTO `users`").WillReturnError(errors.New("db down"))

	err := repo.CreateUser(context.Background(), &model.User{ID: "u-1"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicateUser))
	assert.Contains(t, err.Error(), "db down")
}

func TestGormGetUserByEmail_Found(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "jane.doe", "j@x.com", "hash", "", now, now))

	u, err := repo.GetUserByEmail(context.Background(), "j@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "jane.doe", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestGormGetUserByID_NotFound(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns))

	u, err := repo.GetUserByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestGormGetUserByID_Error(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WillReturnError(errors.New("conn reset"))

	_, err := repo.GetUserByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn reset")
}

func TestGormUsernameExists(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	taken, err := repo.UsernameExists(context.Background(), "jane.doe")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameExists(context.Background(), "jane.doe1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGormUpdateFeedback(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("UPDATE `users` SET `feedback`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `users` SET `feedback`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateFeedback(context.Background(), "u-1", "great app"))
	assert.ErrorIs(t, repo.UpdateFeedback(context.Background(), "missing", "x"), ErrNotFound)
}

func TestGormUpdatePasswordHash(t *testing.T) {
	repo, mock := newGormRepoWithMock(t)

	mock.ExpectExec("UPDATE `users` SET `password_hash`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePasswordHash(context.Background(), "u-1", "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateMySQLError(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, plain, translateMySQLError(plain))

	other := &mysql.MySQLError{Number: 1045, Message: "access denied"}
	assert.Equal(t, error(other), translateMySQLError(other))

	unknownIdx := translateMySQLError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'PRIMARY'"})
	assert.ErrorIs(t, unknownIdx, ErrDuplicateUser)
	assert.False(t, errors.Is(unknownIdx, ErrDuplicateEmail))
}
