package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

func newStore(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewStore(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func str(s string) *string { return &s }

func TestNotFound(t *testing.T) {
	assert.NoError(t, notFound(nil, "get"))
	assert.ErrorIs(t, notFound(sql.ErrNoRows, "get"), ErrNotFound)

	err := notFound(errors.New("bad connection"), "get customer")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.EqualError(t, err, "get customer: bad connection")
}

func TestAssembleTasks(t *testing.T) {
	tasks := []model.TaskView{
		{TaskID: "t1", CreatedFirstName: str("Asha"), AssignedFirstName: str("Ravi"), AssignedLastName: str("K")},
		{TaskID: "t2"},
	}
	history := []model.TaskHistory{
		{TaskHistoryID: 1, TaskID: str("t1"), Status: str(model.TaskPending)},
		{TaskHistoryID: 2, TaskID: str("t1"), Status: str(model.TaskCompleted)},
		{TaskHistoryID: 3},
	}
	subTasks := []model.SubTaskView{{SubTaskID: "s1", TaskID: "t1"}, {SubTaskID: "s2", TaskID: "t1"}}
	subHistory := []model.TaskHistory{{TaskHistoryID: 9, SubTaskID: str("s2")}}

	got := assembleTasks(tasks, history, subTasks, subHistory)
	require.Len(t, got, 2)

	t1 := got[0]
	assert.Equal(t, model.PersonName{FirstName: "Asha"}, t1.CreatedByData)
	assert.Equal(t, model.PersonName{FirstName: "Ravi", LastName: "K"}, t1.AssignedToData)
	require.Len(t, t1.History, 2)
	assert.Equal(t, int64(1), t1.History[0].TaskHistoryID)
	require.Len(t, t1.SubTasks, 2)
	assert.Empty(t, t1.SubTasks[0].History)
	assert.NotNil(t, t1.SubTasks[0].History)
	require.Len(t, t1.SubTasks[1].History, 1)
	assert.Equal(t, int64(9), t1.SubTasks[1].History[0].TaskHistoryID)

	t2 := got[1]
	assert.NotNil(t, t2.History)
	assert.NotNil(t, t2.SubTasks)
	assert.Empty(t, t2.SubTasks)
	assert.Equal(t, model.PersonName{}, t2.CreatedByData)
}

func TestDocumentsOf(t *testing.T) {
	store, mock := newStore(t)
	repo := NewCustomerRepo(store)

	got, err := repo.DocumentsOf(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	cols := strings.Join(model.DocumentsColumns, ", ")
	rows := sqlmock.NewRows([]string{"documents_id", "_customer_id", "light_bill_urls", "bank_detail_urls"}).
		AddRow(int64(1), "c1", `["bill.png"]`, nil).
		AddRow(int64(2), "c1", nil, nil)
	mock.ExpectQuery("SELECT "+cols+" FROM documents_master WHERE _customer_id IN (?, ?) AND is_deleted = ?").
		WithArgs("c1", "c2", 0).WillReturnRows(rows)

	got, err = repo.DocumentsOf(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got["c1"].DocumentsID)
	assert.Equal(t, model.StringList{"bill.png"}, got["c1"].LightBillURLs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategorySoftDelete(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectExec("UPDATE category_master SET is_deleted = ? WHERE category_id = ? AND is_deleted = ?").
		WithArgs(1, 5, 0).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewCategoryRepo(store).SoftDelete(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskJoinsSkipDeletedEmployees(t *testing.T) {
	for _, join := range []string{
		"LEFT JOIN employee_master c ON c.employee_id = t._created_by AND c.is_deleted = 0",
		"LEFT JOIN employee_master a ON a.employee_id = t._assigned_to AND a.is_deleted = 0",
	} {
		assert.Contains(t, taskSelect, join)
	}
	for _, join := range []string{
		"LEFT JOIN employee_master a ON a.employee_id = h._assigned_to AND a.is_deleted = 0",
		"LEFT JOIN employee_master c ON c.employee_id = h._created_by AND c.is_deleted = 0",
	} {
		assert.Contains(t, historySelect, join)
	}
}

func TestListForCompanyWithDeletedCreator(t *testing.T) {
	store, mock := newStore(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(taskSelect+"WHERE t._company_id = ? AND t.is_deleted = 0\nORDER BY t.date_created DESC").
		WithArgs("company-1").
		WillReturnRows(sqlmock.NewRows([]string{"task_id", "_created_by", "date_created", "created_first_name", "assigned_first_name"}).
			AddRow("task-1", "emp-gone", time.Now(), nil, "Ravi"))
	mock.ExpectQuery(historySelect+"WHERE h._task_id IN (?) AND h.is_deleted = 0\nORDER BY h.task_history_id").
		WithArgs("task-1").
		WillReturnRows(sqlmock.NewRows([]string{"task_history_id", "_task_id", "created_first_name"}).
			AddRow(int64(1), "task-1", nil))
	mock.ExpectQuery(`SELECT sub_task_id, _task_id, description, transaction_date, _assigned_to, status
FROM sub_task_master
WHERE _task_id IN (?) AND is_deleted = 0
ORDER BY date_created`).WithArgs("task-1").WillReturnRows(sqlmock.NewRows([]string{"sub_task_id", "_task_id"}))
	mock.ExpectQuery(historySelect+`WHERE h.is_deleted = 0 AND h._sub_task_id IN (
	SELECT sub_task_id FROM sub_task_master WHERE _task_id IN (?) AND is_deleted = 0)
ORDER BY h.task_history_id`).WithArgs("task-1").WillReturnRows(sqlmock.NewRows([]string{"task_history_id"}))

	repo := NewTaskRepo(store)
	tasks, err := repo.ListForCompany(context.Background(), "company-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.PersonName{}, tasks[0].CreatedByData)
	raw, err := json.Marshal(tasks[0].CreatedByData)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
	assert.Equal(t, model.PersonName{FirstName: "Ravi"}, tasks[0].AssignedToData)
	require.Len(t, tasks[0].History, 1)
	assert.Nil(t, tasks[0].History[0].CreatedFirstName)
	assert.Empty(t, tasks[0].SubTasks)
	require.NoError(t, mock.ExpectationsWereMet())
}
