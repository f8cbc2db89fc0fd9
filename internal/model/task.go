package model

import "time"

// Task status values are free text; the mobile client uses these.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// TaskHistory is one entry of a task's or sub-task's audit trail, joined
// with the names of the employees involved.
type TaskHistory struct {
	TaskHistoryID      int64   `db:"task_history_id" json:"task_history_id"`
	TaskID             *string `db:"_task_id" json:"-"`
	SubTaskID          *string `db:"_sub_task_id" json:"-"`
	CreatedBy          *string `db:"_created_by" json:"_created_by"`
	AssignedTo         *string `db:"_assigned_to" json:"_assigned_to"`
	CompletionDate     *string `db:"completion_date" json:"completion_date"`
	Status             *string `db:"status" json:"status"`
	Description        *string `db:"description" json:"description"`
	TransactionDate    *string `db:"transaction_date" json:"transaction_date"`
	AssignedFirstName  *string `db:"assigned_first_name" json:"assigned_first_name"`
	AssignedMiddleName *string `db:"assigned_middle_name" json:"assigned_middle_name"`
	AssignedLastName   *string `db:"assigned_last_name" json:"assigned_last_name"`
	CreatedFirstName   *string `db:"created_first_name" json:"created_first_name"`
	CreatedMiddleName  *string `db:"created_middle_name" json:"created_middle_name"`
	CreatedLastName    *string `db:"created_last_name" json:"created_last_name"`
}

// SubTaskView is a sub-task with its own history.
type SubTaskView struct {
	SubTaskID       string        `db:"sub_task_id" json:"sub_task_id"`
	TaskID          string        `db:"_task_id" json:"_task_id"`
	Description     *string       `db:"description" json:"description"`
	TransactionDate *string       `db:"transaction_date" json:"transaction_date"`
	AssignedTo      *string       `db:"_assigned_to" json:"_assigned_to"`
	Status          *string       `db:"status" json:"status"`
	History         []TaskHistory `db:"-" json:"sub_task_history_data"`
}

// TaskView is the task tree returned by get_task.
type TaskView struct {
	TaskID          string    `db:"task_id" json:"task_id"`
	CreatedBy       *string   `db:"_created_by" json:"_created_by"`
	AssignedTo      *string   `db:"_assigned_to" json:"_assigned_to"`
	CompletionDate  *string   `db:"completion_date" json:"completion_date"`
	TransactionDate *string   `db:"transaction_date" json:"transaction_date"`
	Status          *string   `db:"status" json:"status"`
	Description     *string   `db:"description" json:"description"`
	CompanyID       *string   `db:"_company_id" json:"_company_id"`
	DateCreated     time.Time `db:"date_created" json:"date_created"`

	CreatedFirstName   *string `db:"created_first_name" json:"-"`
	CreatedMiddleName  *string `db:"created_middle_name" json:"-"`
	CreatedLastName    *string `db:"created_last_name" json:"-"`
	AssignedFirstName  *string `db:"assigned_first_name" json:"-"`
	AssignedMiddleName *string `db:"assigned_middle_name" json:"-"`
	AssignedLastName   *string `db:"assigned_last_name" json:"-"`

	CreatedByData  PersonName    `db:"-" json:"created_by_data"`
	AssignedToData PersonName    `db:"-" json:"assigned_to_data"`
	History        []TaskHistory `db:"-" json:"task_history_data"`
	SubTasks       []SubTaskView `db:"-" json:"sub_task_data"`
}
