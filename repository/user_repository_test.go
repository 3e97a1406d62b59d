package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"exerciseTracker/internal/config"
	"exerciseTracker/internal/db"
	"exerciseTracker/internal/testutil"
)

func TestUserRepository_CreateAndQueries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo")
	repo := NewUserRepository(d)
	ctx := context.Background()

	// Empty store lists nothing
	list, err := repo.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("list on empty store: %v len=%d", err, len(list))
	}

	// Create
	u, err := repo.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByID
	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Username != "alice" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByUsername
	g2, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g2)
	}

	// Missing rows are (nil, nil)
	missing, err := repo.GetByID(ctx, u.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil user, got %+v err=%v", missing, err)
	}
	missing, err = repo.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil user, got %+v err=%v", missing, err)
	}

	// List keeps insertion order
	b, err := repo.Create(ctx, "bob")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	list, err = repo.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	if list[0].ID != u.ID || list[1].ID != b.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo_dup")
	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "carol"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, "carol")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_PostgresPlaceholdersAndErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer sqlDB.Close()
	repo := NewUserRepository(db.New(sqlDB, config.DriverPostgres))

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username) VALUES ($1) RETURNING id`)).
		WithArgs("dave").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	u, err := repo.Create(context.Background(), "dave")
	if err != nil || u.ID != 7 {
		t.Fatalf("create: %v %+v", err, u)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (username) VALUES ($1) RETURNING id`)).
		WithArgs("dave").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), "dave"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate from pg unique violation, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db down"))
	if _, err := repo.GetByID(context.Background(), 1); err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}) {
		t.Errorf("sqlite unique constraint not detected")
	}
	if isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}) {
		t.Errorf("foreign key violation reported as unique")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Errorf("pg foreign key violation reported as unique")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Errorf("plain error reported as unique")
	}
}
