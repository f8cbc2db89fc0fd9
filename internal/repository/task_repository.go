package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/model"
)

const (
	taskTable        = "task_master"
	subTaskTable     = "sub_task_master"
	taskHistoryTable = "task_history_master"
)

const taskSelect = `SELECT t.task_id, t._created_by, t._assigned_to, t.completion_date, t.transaction_date,
	t.status, t.description, t._company_id, t.date_created,
	c.first_name AS created_first_name, c.middle_name AS created_middle_name, c.last_name AS created_last_name,
	a.first_name AS assigned_first_name, a.middle_name AS assigned_middle_name, a.last_name AS assigned_last_name
FROM task_master t
LEFT JOIN employee_master c ON c.employee_id = t._created_by AND c.is_deleted = 0
LEFT JOIN employee_master a ON a.employee_id = t._assigned_to AND a.is_deleted = 0
`

const historySelect = `SELECT h.task_history_id, h._task_id, h._sub_task_id, h._created_by, h._assigned_to,
	h.completion_date, h.status, h.description, h.transaction_date,
	a.first_name AS assigned_first_name, a.middle_name AS assigned_middle_name, a.last_name AS assigned_last_name,
	c.first_name AS created_first_name, c.middle_name AS created_middle_name, c.last_name AS created_last_name
FROM task_history_master h
LEFT JOIN employee_master a ON a.employee_id = h._assigned_to AND a.is_deleted = 0
LEFT JOIN employee_master c ON c.employee_id = h._created_by AND c.is_deleted = 0
`

// TaskRepo covers tasks, their sub-tasks and the history rows of both.
type TaskRepo struct{ store *database.Store }

func NewTaskRepo(store *database.Store) *TaskRepo { return &TaskRepo{store: store} }

func (r *TaskRepo) CreateTask(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, taskTable, row); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepo) CreateSubTask(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, subTaskTable, row); err != nil {
		return fmt.Errorf("create sub task: %w", err)
	}
	return nil
}

// AddHistory appends a history row. row carries either _task_id or
// _sub_task_id.
func (r *TaskRepo) AddHistory(ctx context.Context, row database.Row) error {
	if err := r.store.Insert(ctx, taskHistoryTable, row); err != nil {
		return fmt.Errorf("add task history: %w", err)
	}
	return nil
}

// TaskExists returns ErrNotFound unless id is a live task.
func (r *TaskRepo) TaskExists(ctx context.Context, id string) error {
	var ids []string
	err := r.store.Find(ctx, &ids, taskTable, []string{"task_id"}, database.Where{"task_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}
	return nil
}

// SubTaskExists returns ErrNotFound unless id is a live sub-task.
func (r *TaskRepo) SubTaskExists(ctx context.Context, id string) error {
	var ids []string
	err := r.store.Find(ctx, &ids, subTaskTable, []string{"sub_task_id"},
		database.Where{"sub_task_id": id, "is_deleted": live})
	if err != nil {
		return fmt.Errorf("get sub task: %w", err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}
	return nil
}

// SubTaskIDs lists the live sub-tasks of taskID.
func (r *TaskRepo) SubTaskIDs(ctx context.Context, taskID string) ([]string, error) {
	ids := []string{}
	err := r.store.Find(ctx, &ids, subTaskTable, []string{"sub_task_id"},
		database.Where{"_task_id": taskID, "is_deleted": live})
	if err != nil {
		return nil, fmt.Errorf("list sub tasks: %w", err)
	}
	return ids, nil
}

func (r *TaskRepo) SoftDeleteTask(ctx context.Context, id string) error {
	return r.flag(ctx, taskTable, database.Where{"task_id": id})
}

func (r *TaskRepo) SoftDeleteTaskHistory(ctx context.Context, taskID string) error {
	return r.flag(ctx, taskHistoryTable, database.Where{"_task_id": taskID})
}

// SoftDeleteSubTasksOf flags every sub-task of taskID.
func (r *TaskRepo) SoftDeleteSubTasksOf(ctx context.Context, taskID string) error {
	return r.flag(ctx, subTaskTable, database.Where{"_task_id": taskID})
}

func (r *TaskRepo) SoftDeleteSubTask(ctx context.Context, id string) error {
	return r.flag(ctx, subTaskTable, database.Where{"sub_task_id": id})
}

func (r *TaskRepo) SoftDeleteSubTaskHistory(ctx context.Context, subTaskID string) error {
	return r.flag(ctx, taskHistoryTable, database.Where{"_sub_task_id": subTaskID})
}

func (r *TaskRepo) flag(ctx context.Context, table string, where database.Where) error {
	where["is_deleted"] = live
	if err := r.store.Update(ctx, table, softDelete(), where); err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	return nil
}

// ListForCompany returns every live task of companyID, newest first.
func (r *TaskRepo) ListForCompany(ctx context.Context, companyID string) ([]model.TaskView, error) {
	return r.list(ctx, "t._company_id", companyID)
}

// ListAssignedTo returns the live tasks assigned to employeeID, newest first.
func (r *TaskRepo) ListAssignedTo(ctx context.Context, employeeID string) ([]model.TaskView, error) {
	return r.list(ctx, "t._assigned_to", employeeID)
}

func (r *TaskRepo) list(ctx context.Context, column, value string) ([]model.TaskView, error) {
	tasks := []model.TaskView{}
	q := taskSelect + "WHERE " + column + " = ? AND t.is_deleted = 0\nORDER BY t.date_created DESC"
	if err := r.store.Select(ctx, &tasks, q, value); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return tasks, nil
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.TaskID
	}

	var (
		history    []model.TaskHistory
		subTasks   []model.SubTaskView
		subHistory []model.TaskHistory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.store.SelectIn(gctx, &history,
			historySelect+"WHERE h._task_id IN (?) AND h.is_deleted = 0\nORDER BY h.task_history_id", ids)
	})
	g.Go(func() error {
		return r.store.SelectIn(gctx, &subTasks, `SELECT sub_task_id, _task_id, description, transaction_date, _assigned_to, status
FROM sub_task_master
WHERE _task_id IN (?) AND is_deleted = 0
ORDER BY date_created`, ids)
	})
	g.Go(func() error {
		return r.store.SelectIn(gctx, &subHistory, historySelect+`WHERE h.is_deleted = 0 AND h._sub_task_id IN (
	SELECT sub_task_id FROM sub_task_master WHERE _task_id IN (?) AND is_deleted = 0)
ORDER BY h.task_history_id`, ids)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load task details: %w", err)
	}
	return assembleTasks(tasks, history, subTasks, subHistory), nil
}

func assembleTasks(tasks []model.TaskView, history []model.TaskHistory, subTasks []model.SubTaskView, subHistory []model.TaskHistory) []model.TaskView {
	bySubTask := map[string][]model.TaskHistory{}
	for _, h := range subHistory {
		if h.SubTaskID != nil {
			bySubTask[*h.SubTaskID] = append(bySubTask[*h.SubTaskID], h)
		}
	}
	subsByTask := map[string][]model.SubTaskView{}
	for _, s := range subTasks {
		s.History = bySubTask[s.SubTaskID]
		if s.History == nil {
			s.History = []model.TaskHistory{}
		}
		subsByTask[s.TaskID] = append(subsByTask[s.TaskID], s)
	}
	byTask := map[string][]model.TaskHistory{}
	for _, h := range history {
		if h.TaskID != nil {
			byTask[*h.TaskID] = append(byTask[*h.TaskID], h)
		}
	}

	for i := range tasks {
		t := &tasks[i]
		t.CreatedByData = model.NameOf(t.CreatedFirstName, t.CreatedMiddleName, t.CreatedLastName)
		t.AssignedToData = model.NameOf(t.AssignedFirstName, t.AssignedMiddleName, t.AssignedLastName)
		t.History = byTask[t.TaskID]
		if t.History == nil {
			t.History = []model.TaskHistory{}
		}
		t.SubTasks = subsByTask[t.TaskID]
		if t.SubTasks == nil {
			t.SubTasks = []model.SubTaskView{}
		}
	}
	return tasks
}
