package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/database"
	"github.com/iliyamo/docdesk/internal/dispatch"
	"github.com/iliyamo/docdesk/internal/model"
	"github.com/iliyamo/docdesk/internal/response"
)

type taskAction interface{ isTaskAction() }

// addTask creates a task, or a sub-task of TaskID when it is set.
type addTask struct {
	CreatedBy      string  `json:"created_by" validate:"required"`
	AssignedTo     string  `json:"assigned_to" validate:"required"`
	CompletionDate string  `json:"completion_date" validate:"required"`
	Status         string  `json:"status" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	TaskID         *string `json:"task_id" validate:"omitempty,min=1"`
}

// editTask appends a history entry to a task or a sub-task.
type editTask struct {
	TaskID         *string `json:"task_id" validate:"omitempty,min=1"`
	SubTaskID      *string `json:"sub_task_id" validate:"omitempty,min=1"`
	CreatedBy      *string `json:"created_by" validate:"omitempty,min=1"`
	AssignedTo     *string `json:"assigned_to" validate:"omitempty,min=1"`
	CompletionDate *string `json:"completion_date" validate:"omitempty,min=1"`
	Status         *string `json:"status" validate:"omitempty,min=1"`
	Description    *string `json:"description" validate:"omitempty,min=1"`
}

type deleteTask struct {
	TaskID string `json:"task_id" validate:"required"`
}

type deleteSubTask struct {
	SubTaskID string `json:"sub_task_id" validate:"required"`
}

type listTasks struct{}

func (*addTask) isTaskAction()       {}
func (*editTask) isTaskAction()      {}
func (*deleteTask) isTaskAction()    {}
func (*deleteSubTask) isTaskAction() {}
func (*listTasks) isTaskAction()     {}

var taskResource = dispatch.NewResource[taskAction]("task",
	dispatch.Variant[taskAction]{Action: "add_task", New: func() taskAction { return &addTask{} }},
	dispatch.Variant[taskAction]{Action: "edit_task", New: func() taskAction { return &editTask{} }},
	dispatch.Variant[taskAction]{Action: "get_task", New: func() taskAction { return &listTasks{} }},
	dispatch.Variant[taskAction]{Action: "delete_task", New: func() taskAction { return &deleteTask{} }},
	dispatch.Variant[taskAction]{Action: "delete_sub_task", New: func() taskAction { return &deleteSubTask{} }},
)

// ManageTask serves /task/manage-task.
func (h *Handler) ManageTask(ctx context.Context, ev events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return manage(ctx, h, ev, taskResource, func(ctx context.Context, c auth.Claims, a taskAction) (events.APIGatewayProxyResponse, error) {
		switch req := a.(type) {
		case *addTask:
			return h.addTask(ctx, c, req)
		case *editTask:
			return h.editTask(ctx, req)
		case *deleteTask:
			return h.deleteTask(ctx, req)
		case *deleteSubTask:
			return h.deleteSubTask(ctx, req)
		case *listTasks:
			return h.listTasks(ctx, c)
		}
		return events.APIGatewayProxyResponse{}, errors.New("unhandled task action")
	})
}

func (h *Handler) addTask(ctx context.Context, c auth.Claims, req *addTask) (events.APIGatewayProxyResponse, error) {
	now := h.timestamp()
	fields := database.Row{
		"_created_by":      req.CreatedBy,
		"_assigned_to":     req.AssignedTo,
		"completion_date":  req.CompletionDate,
		"transaction_date": now,
		"status":           req.Status,
		"description":      req.Description,
	}
	history := database.Row{}
	for k, v := range fields {
		history[k] = v
	}
	fields["_company_id"] = c.CompanyID

	g, gctx := errgroup.WithContext(ctx)
	if req.TaskID == nil {
		id := h.newUUID()
		fields["task_id"] = id
		history["_task_id"] = id
		g.Go(func() error { return h.tasks.CreateTask(gctx, fields) })
	} else {
		id := h.newUUID()
		fields["sub_task_id"] = id
		fields["_task_id"] = *req.TaskID
		history["_sub_task_id"] = id
		g.Go(func() error { return h.tasks.CreateSubTask(gctx, fields) })
	}
	g.Go(func() error { return h.tasks.AddHistory(gctx, history) })
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Task created successfully", nil), nil
}

func (h *Handler) editTask(ctx context.Context, req *editTask) (events.APIGatewayProxyResponse, error) {
	if req.TaskID == nil && req.SubTaskID == nil {
		return events.APIGatewayProxyResponse{}, errors.New("Task id or Sub Task id is required.")
	}
	if req.TaskID != nil {
		if err := h.tasks.TaskExists(ctx, *req.TaskID); err != nil {
			return events.APIGatewayProxyResponse{}, lookup(err, "Task not found.")
		}
	}
	if req.SubTaskID != nil {
		if err := h.tasks.SubTaskExists(ctx, *req.SubTaskID); err != nil {
			return events.APIGatewayProxyResponse{}, lookup(err, "Sub Task not found.")
		}
	}

	err := h.tasks.AddHistory(ctx, database.Row{
		"_task_id":         req.TaskID,
		"_sub_task_id":     req.SubTaskID,
		"_created_by":      req.CreatedBy,
		"_assigned_to":     req.AssignedTo,
		"completion_date":  req.CompletionDate,
		"transaction_date": h.timestamp(),
		"status":           req.Status,
		"description":      req.Description,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Task updated successfully", nil), nil
}

// deleteTask flags the task, its history, its sub-tasks and their history.
func (h *Handler) deleteTask(ctx context.Context, req *deleteTask) (events.APIGatewayProxyResponse, error) {
	var subTasks []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subTasks, err = h.tasks.SubTaskIDs(gctx, req.TaskID)
		return err
	})
	g.Go(func() error { return h.tasks.TaskExists(gctx, req.TaskID) })
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, lookup(err, "Task not found.")
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return h.tasks.SoftDeleteTask(gctx, req.TaskID) })
	g.Go(func() error { return h.tasks.SoftDeleteTaskHistory(gctx, req.TaskID) })
	g.Go(func() error { return h.tasks.SoftDeleteSubTasksOf(gctx, req.TaskID) })
	for _, id := range subTasks {
		id := id
		g.Go(func() error { return h.tasks.SoftDeleteSubTaskHistory(gctx, id) })
	}
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Task deleted successfully", nil), nil
}

func (h *Handler) deleteSubTask(ctx context.Context, req *deleteSubTask) (events.APIGatewayProxyResponse, error) {
	if err := h.tasks.SubTaskExists(ctx, req.SubTaskID); err != nil {
		return events.APIGatewayProxyResponse{}, lookup(err, "Sub task not found.")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.tasks.SoftDeleteSubTask(gctx, req.SubTaskID) })
	g.Go(func() error { return h.tasks.SoftDeleteSubTaskHistory(gctx, req.SubTaskID) })
	if err := g.Wait(); err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Sub task deleted successfully", nil), nil
}

// listTasks shows admins every task of the company and other employees
// the tasks assigned to them.
func (h *Handler) listTasks(ctx context.Context, c auth.Claims) (events.APIGatewayProxyResponse, error) {
	var (
		tasks []model.TaskView
		err   error
	)
	if c.Role == auth.RoleEmployee {
		tasks, err = h.tasks.ListAssignedTo(ctx, c.EmployeeID)
	} else {
		tasks, err = h.tasks.ListForCompany(ctx, c.CompanyID)
	}
	if err != nil {
		return events.APIGatewayProxyResponse{}, internal(err)
	}
	return response.OK("Task list fetched successfully", map[string]any{"taskData": tasks}), nil
}
