package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := NewUserRepository(newDB(db, config.DriverPostgres, l), l).(*userRepository)
	repo.now = func() time.Time { return fixedNow }

	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.Password, u.Salt, string(u.Role), string(u.Status),
			u.FollowerCount, u.PostCount, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func sampleUser() models.User {
	return models.User{
		ID:            "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		Username:      "alice",
		Password:      "digest",
		Salt:          "salt",
		Role:          models.RoleUser,
		Status:        models.StatusActive,
		FollowerCount: 3,
		PostCount:     7,
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}
}

// ---------------------------------------------------------------------------
// FindByCondition / GetByID
// ---------------------------------------------------------------------------

func TestFindByCondition_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	want := sampleUser()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE \(username = \$1 AND status <> \$2\)`).
		WithArgs("alice", "DELETED").
		WillReturnRows(userRows(want))

	got, err := repo.FindByCondition(context.Background(), models.UserCondition{Username: "alice", LiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCondition_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, err := repo.FindByCondition(context.Background(), models.UserCondition{Username: "ghost"})
	require.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindByCondition_EmptyCondition(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	_, err := repo.FindByCondition(context.Background(), models.UserCondition{})
	require.ErrorIs(t, err, ErrEmptyCondition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCondition_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.FindByCondition(context.Background(), models.UserCondition{Username: "alice"})
	require.ErrorIs(t, err, ErrScanningRow)
	assert.False(t, errors.Is(err, ErrNoUserWasFound))
}

func TestGetByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	deleted := sampleUser()
	deleted.Status = models.StatusDeleted

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(deleted.ID).
		WillReturnRows(userRows(deleted))
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), deleted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, got.Status)

	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNoUserWasFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Insert
// ---------------------------------------------------------------------------

func TestInsert_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.Password, user.Salt, "USER", "ACTIVE",
			user.FollowerCount, user.PostCount, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Insert(context.Background(), sampleUser())
	require.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestInsert_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("db network error"))

	err := repo.Insert(context.Background(), sampleUser())
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.Contains(t, err.Error(), "db network error")
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	role := models.RoleAdmin

	mock.ExpectExec(`UPDATE users SET role = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("ADMIN", fixedNow, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "id-1", models.UserUpdate{Role: &role}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_KeepsGivenTimestamp(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	at := fixedNow.Add(-time.Hour)

	mock.ExpectExec(`UPDATE users SET updated_at = \$1 WHERE id = \$2`).
		WithArgs(at, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "id-1", models.UserUpdate{UpdatedAt: at}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Errors(t *testing.T) {
	username := "bob"

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "no rows affected",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNoUserWasFound,
		},
		{
			name: "username taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).WillReturnError(pgError(pgerrcode.UniqueViolation))
			},
			wantErr: ErrUsernameAlreadyExists,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).WillReturnError(pgError(pgerrcode.DeadlockDetected))
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "rows affected error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not support it")))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)
			tt.setup(mock)

			err := repo.Update(context.Background(), "id-1", models.UserUpdate{Username: &username})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// SoftDelete
// ---------------------------------------------------------------------------

func TestSoftDelete(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`UPDATE users SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("DELETED", fixedNow, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET status`).
		WithArgs("DELETED", fixedNow, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), "id-1"))
	require.ErrorIs(t, repo.SoftDelete(context.Background(), "missing"), ErrNoUserWasFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Error classifiers
// ---------------------------------------------------------------------------

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.True(t, c.IsUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.False(t, c.IsUniqueViolation(pgError(pgerrcode.CheckViolation)))
	assert.False(t, c.IsUniqueViolation(errors.New("plain")))

	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.SerializationFailure)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, "retryable", Retryable.String())
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	check := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}

	assert.True(t, c.IsUniqueViolation(unique))
	assert.False(t, c.IsUniqueViolation(check))
	assert.False(t, c.IsUniqueViolation(errors.New("plain")))

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, NonRetryable, c.Classify(unique))
}

// ---------------------------------------------------------------------------
// SQLite end to end
// ---------------------------------------------------------------------------

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	s, err := NewStorages(context.Background(), config.DB{
		DSN:    "file::memory:",
		Driver: config.DriverSQLite,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStorages_UnsupportedDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.DB{DSN: "x", Driver: "mysql"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestUserRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteStorages(t).UserRepository

	alice := sampleUser()
	require.NoError(t, repo.Insert(ctx, alice))

	// same username while alice is live
	dup := sampleUser()
	dup.ID = "0190a1b2-c3d4-7e5f-8a9b-000000000002"
	require.ErrorIs(t, repo.Insert(ctx, dup), ErrUsernameAlreadyExists)

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, got.Username)
	assert.Equal(t, alice.Role, got.Role)
	assert.True(t, alice.CreatedAt.Equal(got.CreatedAt))

	banned := models.StatusBanned
	require.NoError(t, repo.Update(ctx, alice.ID, models.UserUpdate{Status: &banned}))
	got, err = repo.FindByCondition(ctx, models.UserCondition{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBanned, got.Status)

	// reuse after soft delete
	require.NoError(t, repo.SoftDelete(ctx, alice.ID))
	_, err = repo.FindByCondition(ctx, models.UserCondition{Username: "alice", LiveOnly: true})
	require.ErrorIs(t, err, ErrNoUserWasFound)

	dup.CreatedAt = fixedNow.Add(-time.Hour)
	require.NoError(t, repo.Insert(ctx, dup))

	// the live record wins even though it is older
	got, err = repo.FindByCondition(ctx, models.UserCondition{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, dup.ID, got.ID)

	require.ErrorIs(t, repo.SoftDelete(ctx, "missing"), ErrNoUserWasFound)
}
