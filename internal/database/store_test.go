package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T, driver string) (*Store, sqlmock.Sqlmock, *[]string) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	var ops []string
	store := NewStore(sqlx.NewDb(mockDB, driver), func(op string, _ time.Duration) {
		ops = append(ops, op)
	})
	return store, mock, &ops
}

type categoryRow struct {
	ID   int64  `db:"category_id"`
	Name string `db:"category_name"`
}

func TestGetBuildsSortedBoundQuery(t *testing.T) {
	store, mock, ops := setupStoreTest(t, "sqlmock")

	mock.ExpectQuery("SELECT category_id, category_name FROM category_master WHERE category_id = ? AND is_deleted = ? LIMIT 1").
		WithArgs(7, 0).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).AddRow(7, "Tax"))

	var row categoryRow
	err := store.Get(context.Background(), &row, "category_master",
		[]string{"category_id", "category_name"}, Where{"is_deleted": 0, "category_id": 7})
	require.NoError(t, err)
	assert.Equal(t, categoryRow{ID: 7, Name: "Tax"}, row)
	assert.Equal(t, []string{"get"}, *ops)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	store, mock, _ := setupStoreTest(t, "sqlmock")

	mock.ExpectQuery("SELECT * FROM notes_master WHERE note_id = ? LIMIT 1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"note_id"}))

	var row struct {
		ID int64 `db:"note_id"`
	}
	err := store.Get(context.Background(), &row, "notes_master", nil, Where{"note_id": 1})
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestInsertSkipsNilValues(t *testing.T) {
	store, mock, _ := setupStoreTest(t, "sqlmock")

	var image *string
	mock.ExpectExec("INSERT INTO customer_master (_company_id, first_name) VALUES (?, ?)").
		WithArgs("co-1", "Asha").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Insert(context.Background(), "customer_master", Row{
		"first_name":     "Asha",
		"_company_id":    "co-1",
		"user_image_url": image,
		"is_married":     nil,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReturning(t *testing.T) {
	t.Run("mysql uses LastInsertId", func(t *testing.T) {
		store, mock, _ := setupStoreTest(t, "mysql")
		mock.ExpectExec("INSERT INTO conversations_master (_customer_id, _employee_id) VALUES (?, ?)").
			WithArgs("c", "e").
			WillReturnResult(sqlmock.NewResult(42, 1))

		id, err := store.InsertReturning(context.Background(), "conversations_master",
			Row{"_employee_id": "e", "_customer_id": "c"}, "conversation_id")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("postgres uses RETURNING with dollar binds", func(t *testing.T) {
		store, mock, _ := setupStoreTest(t, "pgx")
		mock.ExpectQuery("INSERT INTO conversations_master (_customer_id, _employee_id) VALUES ($1, $2) RETURNING conversation_id").
			WithArgs("c", "e").
			WillReturnRows(sqlmock.NewRows([]string{"conversation_id"}).AddRow(9))

		id, err := store.InsertReturning(context.Background(), "conversations_master",
			Row{"_employee_id": "e", "_customer_id": "c"}, "conversation_id")
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	t.Run("patch skips nil and binds where last", func(t *testing.T) {
		store, mock, _ := setupStoreTest(t, "sqlmock")
		name := "Audit"
		mock.ExpectExec("UPDATE category_master SET category_name = ? WHERE category_id = ?").
			WithArgs("Audit", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		var none *string
		err := store.Update(context.Background(), "category_master",
			Row{"category_name": &name, "color": none}, Where{"category_id": 3})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch runs nothing", func(t *testing.T) {
		store, mock, ops := setupStoreTest(t, "sqlmock")
		err := store.Update(context.Background(), "notes_master", Row{"title": nil}, Where{"note_id": 1})
		require.NoError(t, err)
		assert.Empty(t, *ops)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing filter is refused", func(t *testing.T) {
		store, _, _ := setupStoreTest(t, "sqlmock")
		err := store.Update(context.Background(), "notes_master", Row{"is_deleted": 1}, nil)
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	store, mock, _ := setupStoreTest(t, "sqlmock")
	mock.ExpectExec("DELETE FROM verification_otp_master WHERE action_type = ? AND email_id = ?").
		WithArgs("signup", "a@b.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Delete(context.Background(), "verification_otp_master",
		Where{"email_id": "a@b.com", "action_type": "signup"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentifiersAreChecked(t *testing.T) {
	store, _, _ := setupStoreTest(t, "sqlmock")
	ctx := context.Background()

	assert.Error(t, store.Insert(ctx, "users; DROP TABLE x", Row{"a": 1}))
	assert.Error(t, store.Insert(ctx, "notes_master", Row{"title = 1 --": "x"}))
	assert.Error(t, store.Delete(ctx, "notes_master", Where{"1=1 OR note_id": 1}))

	var rows []categoryRow
	assert.Error(t, store.Find(ctx, &rows, "category_master", []string{"*"}, nil))
}

func TestSelectRebindsForPostgres(t *testing.T) {
	store, mock, _ := setupStoreTest(t, "pgx")
	mock.ExpectQuery("SELECT category_id, category_name FROM category_master WHERE _company_id = $1 AND is_deleted = 0").
		WithArgs("co").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "category_name"}).AddRow(1, "A").AddRow(2, "B"))

	var rows []categoryRow
	err := store.Select(context.Background(), &rows,
		"SELECT category_id, category_name FROM category_master WHERE _company_id = ? AND is_deleted = 0", "co")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSelectInExpandsSlices(t *testing.T) {
	store, mock, ops := setupStoreTest(t, "pgx")

	mock.ExpectQuery("SELECT sub_task_id FROM sub_task_master WHERE _task_id IN ($1, $2) AND is_deleted = $3").
		WithArgs("t1", "t2", 0).
		WillReturnRows(sqlmock.NewRows([]string{"sub_task_id"}).AddRow("s1"))

	var ids []string
	err := store.SelectIn(context.Background(), &ids,
		"SELECT sub_task_id FROM sub_task_master WHERE _task_id IN (?) AND is_deleted = ?", []string{"t1", "t2"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
	assert.Equal(t, []string{"select"}, *ops)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectInEmptyListSkipsQuery(t *testing.T) {
	store, mock, ops := setupStoreTest(t, "sqlmock")

	var ids []string
	err := store.SelectIn(context.Background(), &ids, "SELECT sub_task_id FROM sub_task_master WHERE _task_id IN (?)", []string{})
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, *ops)
	assert.NoError(t, mock.ExpectationsWereMet())
}
