package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(user_id,\s*email,\s*password_plain,\s*password_md5\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`

	created := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("a-1", created)
	mock.ExpectQuery(q).
		WithArgs("u1", "bob123@gmail.com", "Xk7pQw9rT2", "3f2a9c0d4e5b6a718293a4b5c6d7e8f9").
		WillReturnRows(rows)

	a := &models.Account{
		UserID:      "u1",
		Email:       "bob123@gmail.com",
		Password:    "Xk7pQw9rT2",
		PasswordMD5: "3f2a9c0d4e5b6a718293a4b5c6d7e8f9",
	}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\b.*RETURNING\s+id,\s*created_at\s*$`

	mock.ExpectQuery(q).
		WithArgs("u1", "bob123@gmail.com", "pw", "md5").
		WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), &models.Account{
		UserID: "u1", Email: "bob123@gmail.com", Password: "pw", PasswordMD5: "md5",
	})
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetAllByUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, user_id, email, password_plain, password_md5, created_at from accounts\s+WHERE user_id=\$1\s+ORDER BY created_at, id`)

	t0 := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "email", "password_plain", "password_md5", "created_at",
	}).AddRow(
		"a1", "u1", "first@yahoo.com", "pw1", "11111111111111111111111111111111", t0,
	).AddRow(
		"a2", "u1", "second@mail.ru", "pw2", "22222222222222222222222222222222", t0.Add(time.Minute),
	)

	mock.ExpectQuery(q.String()).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.GetAllByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].ID != "a1" || got[0].Email != "first@yahoo.com" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].ID != "a2" || got[1].PasswordMD5 != "22222222222222222222222222222222" {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestGetAllByUser_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, user_id, email, password_plain, password_md5, created_at from accounts\s+WHERE user_id=\$1`)

	mock.ExpectQuery(q.String()).
		WithArgs("u1").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetAllByUser(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`failed to select accounts: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped select error, got %v", err)
	}
}

func TestGetAllByUser_RowsErr(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, user_id, email, password_plain, password_md5, created_at from accounts\s+WHERE user_id=\$1`)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "email", "password_plain", "password_md5", "created_at",
	}).
		AddRow("a1", "u1", "first@yahoo.com", "pw1", "md5-1", time.Now()).
		AddRow("a2", "u1", "second@mail.ru", "pw2", "md5-2", time.Now()).
		RowError(1, errors.New("row-err"))

	mock.ExpectQuery(q.String()).
		WithArgs("u1").
		WillReturnRows(rows)

	_, err := repo.GetAllByUser(context.Background(), "u1")
	if err == nil || err.Error() != "row-err" {
		t.Fatalf("expected rows.Err 'row-err', got %v", err)
	}
}

func TestCountByUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+count\(\*\)\s+from\s+accounts\s+WHERE\s+user_id=\$1\s*$`

	rows := sqlmock.NewRows([]string{"count"}).AddRow(7)
	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(rows)

	n, err := repo.CountByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("want 7, got %d", n)
	}
}

func TestCountByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+count\(\*\)\s+from\s+accounts\s+WHERE\s+user_id=\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnError(errors.New("db err"))

	_, err := repo.CountByUser(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteAllForUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+accounts\s+WHERE\s+user_id=\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 5))

	if err := repo.DeleteAllForUser(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
