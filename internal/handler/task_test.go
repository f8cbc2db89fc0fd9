package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTaskFlagsEverythingBelowIt(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT sub_task_id FROM sub_task_master WHERE _task_id = ? AND is_deleted = ?").
		WithArgs("task-1", 0).
		WillReturnRows(sqlmock.NewRows([]string{"sub_task_id"}).AddRow("sub-1").AddRow("sub-2"))
	mock.ExpectQuery("SELECT task_id FROM task_master WHERE is_deleted = ? AND task_id = ?").
		WithArgs(0, "task-1").
		WillReturnRows(sqlmock.NewRows([]string{"task_id"}).AddRow("task-1"))

	mock.ExpectExec("UPDATE task_master SET is_deleted = ? WHERE is_deleted = ? AND task_id = ?").
		WithArgs(1, 0, "task-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE task_history_master SET is_deleted = ? WHERE _task_id = ? AND is_deleted = ?").
		WithArgs(1, "task-1", 0).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE sub_task_master SET is_deleted = ? WHERE _task_id = ? AND is_deleted = ?").
		WithArgs(1, "task-1", 0).WillReturnResult(sqlmock.NewResult(0, 2))
	for _, sub := range []string{"sub-1", "sub-2"} {
		mock.ExpectExec("UPDATE task_history_master SET is_deleted = ? WHERE _sub_task_id = ? AND is_deleted = ?").
			WithArgs(1, sub, 0).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	res := h.ManageTask(context.Background(), event(employeeToken(t, "ADMIN"), `{"action":"delete_task","task_id":"task-1"}`))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":true,"message":"Task deleted successfully"}`, res.Body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingTask(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT sub_task_id FROM sub_task_master WHERE _task_id = ? AND is_deleted = ?").
		WithArgs("task-9", 0).WillReturnRows(sqlmock.NewRows([]string{"sub_task_id"}))
	mock.ExpectQuery("SELECT task_id FROM task_master WHERE is_deleted = ? AND task_id = ?").
		WithArgs(0, "task-9").WillReturnRows(sqlmock.NewRows([]string{"task_id"}))

	res := h.ManageTask(context.Background(), event(employeeToken(t, "ADMIN"), `{"action":"delete_task","task_id":"task-9"}`))
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Task not found.", decode(t, res).Message)
}

func TestAddSubTaskWritesHistory(t *testing.T) {
	h, mock := newTestHandler(t, "sub-1")
	mock.MatchExpectationsInOrder(false)

	mock.ExpectExec("INSERT INTO sub_task_master (_assigned_to, _company_id, _created_by, _task_id, completion_date, description, status, sub_task_id, transaction_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)").
		WithArgs("emp-2", "company-1", "emp-1", "task-1", "2024-02-01", "File GST", "PENDING", "sub-1", "2024-01-02 03:04:05").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO task_history_master (_assigned_to, _created_by, _sub_task_id, completion_date, description, status, transaction_date) VALUES (?, ?, ?, ?, ?, ?, ?)").
		WithArgs("emp-2", "emp-1", "sub-1", "2024-02-01", "File GST", "PENDING", "2024-01-02 03:04:05").
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := `{"action":"add_task","task_id":"task-1","created_by":"emp-1","assigned_to":"emp-2",
		"completion_date":"2024-02-01","status":"PENDING","description":"File GST"}`
	res := h.ManageTask(context.Background(), event(employeeToken(t, "ADMIN"), body))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Task created successfully", decode(t, res).Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEditTaskNeedsAnID(t *testing.T) {
	h, mock := newTestHandler(t)
	res := h.ManageTask(context.Background(), event(employeeToken(t, "ADMIN"), `{"action":"edit_task","status":"DONE"}`))
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Task id or Sub Task id is required.", decode(t, res).Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaskForEmployeeWithNoTasks(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT t.task_id, t._created_by, t._assigned_to, t.completion_date, t.transaction_date,
	t.status, t.description, t._company_id, t.date_created,
	c.first_name AS created_first_name, c.middle_name AS created_middle_name, c.last_name AS created_last_name,
	a.first_name AS assigned_first_name, a.middle_name AS assigned_middle_name, a.last_name AS assigned_last_name
FROM task_master t
LEFT JOIN employee_master c ON c.employee_id = t._created_by AND c.is_deleted = 0
LEFT JOIN employee_master a ON a.employee_id = t._assigned_to AND a.is_deleted = 0
WHERE t._assigned_to = ? AND t.is_deleted = 0
ORDER BY t.date_created DESC`).WithArgs("emp-1").WillReturnRows(sqlmock.NewRows([]string{"task_id"}))

	res := h.ManageTask(context.Background(), event(employeeToken(t, "EMP"), `{"action":"get_task"}`))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":true,"message":"Task list fetched successfully","data":{"taskData":[]}}`, res.Body)
	require.NoError(t, mock.ExpectationsWereMet())
}
