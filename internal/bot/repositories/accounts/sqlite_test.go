package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/bot/models"
	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE accounts (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_plain TEXT NOT NULL,
  password_md5 TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  error_message TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func testAccount(id string, createdAt time.Time) *models.Account {
	return &models.Account{
		ID:            id,
		Email:         id + "@example.com",
		PasswordPlain: "Passw0rdPlain",
		PasswordMD5:   "5f4dcc3b5aa765d61d8327deb882cf99",
		Status:        models.StatusPending,
		CreatedAt:     createdAt,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, testAccount("id1", created)))

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "id1", got.ID)
	assert.Equal(t, "id1@example.com", got.Email)
	assert.Equal(t, "Passw0rdPlain", got.PasswordPlain)
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", got.PasswordMD5)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Empty(t, got.ErrorMessage)
	assert.True(t, got.CreatedAt.Equal(created), "created_at %v != %v", got.CreatedAt, created)

	_, err = r.GetByID(ctx, "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_DuplicateIDFails(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testAccount("dup", time.Now())))
	require.Error(t, r.Create(ctx, testAccount("dup", time.Now())))
}

func TestUpdateResult(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testAccount("a1", time.Now())))

	// успех
	require.NoError(t, r.UpdateResult(ctx, "a1", models.StatusSuccess, ""))
	got, err := r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, got.Status)
	assert.Empty(t, got.ErrorMessage)

	// ошибка с сообщением
	require.NoError(t, r.UpdateResult(ctx, "a1", models.StatusError, "endpoint returned 502"))
	got, err = r.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, got.Status)
	assert.Equal(t, "endpoint returned 502", got.ErrorMessage)

	// id remains stable across transitions
	assert.Equal(t, "a1", got.ID)

	err = r.UpdateResult(ctx, "missing", models.StatusSuccess, "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetAll_NewestFirst(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.Create(ctx, testAccount("old", base)))
	require.NoError(t, r.Create(ctx, testAccount("mid", base.Add(time.Minute))))
	require.NoError(t, r.Create(ctx, testAccount("new", base.Add(2*time.Minute))))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "old", got[2].ID)
}

func TestGetAll_Empty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteByID_SuccessAndNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testAccount("x", time.Now())))

	require.NoError(t, r.DeleteByID(ctx, "x"))

	err := r.DeleteByID(ctx, "x")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testAccount("c1", time.Now())))
	require.NoError(t, r.Create(ctx, testAccount("c2", time.Now())))

	require.NoError(t, r.Clear(ctx))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	// повторная очистка пустой таблицы не ошибка
	require.NoError(t, r.Clear(ctx))
}

func TestCountByStatus(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, testAccount("s1", time.Now())))
	require.NoError(t, r.Create(ctx, testAccount("s2", time.Now())))
	require.NoError(t, r.Create(ctx, testAccount("s3", time.Now())))
	require.NoError(t, r.UpdateResult(ctx, "s1", models.StatusSuccess, ""))
	require.NoError(t, r.UpdateResult(ctx, "s2", models.StatusError, "boom"))

	got, err := r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[models.AccountStatus]int{
		models.StatusSuccess: 1,
		models.StatusError:   1,
		models.StatusPending: 1,
	}, got)
}
