// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/api"
	"tasktracker/internal/feature/tasks/domain/entity"
	"tasktracker/internal/feature/tasks/usecase"
	jwtmw "tasktracker/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, ownerID uint, p usecase.ListParams) ([]entity.Task, error)
	Get(ctx context.Context, ownerID, id uint) (*entity.Task, error)
	Update(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TaskHandler はタスクCRUDのHTTPリクエストを処理します。
// 認証ミドルウェアの背後に配置され、コンテキストからオーナーIDを取得します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create は新規タスク作成エンドポイントを処理します。
// オーナーは認証済みIDから注入され、リクエストからは受け付けません。
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req api.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create task validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	in := usecase.CreateTaskInput{
		Title:    req.Title,
		Deadline: req.Deadline,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Status != nil {
		in.Status = entity.Status(*req.Status)
	}
	if req.Priority != nil {
		in.Priority = entity.Priority(*req.Priority)
	}

	task, err := h.tasks.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	slog.Info("task created", "task_id", task.ID, "user_id", ownerID)
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List はオーナーのタスク一覧エンドポイントを処理します。
//
// エンドポイント例:
// GET /tasks?status=pending&search=report&sortBy=deadline&sortOrder=desc
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	params := usecase.ListParams{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	tasks, err := h.tasks.List(c.Request.Context(), ownerID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	out := make([]api.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}

	c.JSON(http.StatusOK, out)
}

// Get はタスク1件取得エンドポイントを処理します。
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update は部分更新エンドポイントを処理します。
// リクエストに含まれるフィールドのみ置き換え、省略されたフィールドは保持されます。
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	var req api.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update task validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	in := usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		in.Status = &s
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		in.Priority = &p
	}

	task, err := h.tasks.Update(c.Request.Context(), ownerID, id, in)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	slog.Info("task updated", "task_id", task.ID, "user_id", ownerID)
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete はタスク削除エンドポイントを処理します。削除は永久で復元できません。
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	id, ok := taskIDFromPath(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondTaskError(c, err)
		return
	}

	slog.Info("task deleted", "task_id", id, "user_id", ownerID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "task removed"})
}

// ownerFromContext は認証ミドルウェアが設定したオーナーIDを取得します。
// ミドルウェアの背後にない場合は401で打ち切ります。
func ownerFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return 0, false
	}
	return v.(uint), true
}

// taskIDFromPath はパスパラメータのタスクIDをパースします。
// ストアのキー形式に合わない識別子は存在しないタスクとして404にします。
func taskIDFromPath(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
		return 0, false
	}
	return uint(id), true
}

// respondTaskError は内部エラー種別を外部ステータスへ対応付けます。
// 内部では区別を保ちつつ、所有権違反は互換性のため401として公開します。
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authorized"})
	case errors.Is(err, usecase.ErrInvalidTask):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		// ストア障害などの詳細はログのみに残し、呼び出し元には公開しない
		slog.Error("task operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server error"})
	}
}

// toTaskResponse はタスクエンティティをAPIレスポンスへ変換します。
func toTaskResponse(t *entity.Task) api.TaskResponse {
	return api.TaskResponse{
		Id:          t.ID,
		UserId:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Status:      api.TaskStatus(t.Status),
		Priority:    api.TaskPriority(t.Priority),
		CreatedAt:   t.CreatedAt,
	}
}
