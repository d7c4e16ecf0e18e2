// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasktracker/internal/feature/tasks/domain/entity"
)

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// Create は新しいタスクをストレージに永続化します。
	Create(ctx context.Context, task *entity.Task) error

	// FindByID は指定されたIDに一致するタスクを取得します。
	// タスクが存在しない場合、ErrTaskNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// List は正規化済みのクエリ仕様を実行し、一致するタスクを返します。
	List(ctx context.Context, q ListQuery) ([]entity.Task, error)

	// UpdateFields は指定されたタスクの与えられたカラムのみを置き換えます。
	// 所有者IDはキャッシュ無効化と多層防御のための条件として使われます。
	UpdateFields(ctx context.Context, ownerID, id uint, fields map[string]any) error

	// Delete はタスクを完全に削除します（論理削除なし）。
	Delete(ctx context.Context, ownerID, id uint) error
}

// CreateTaskInput は新規タスクの入力です。オーナーは認証済みIDから注入されます。
type CreateTaskInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Status      entity.Status   // 空の場合はpending
	Priority    entity.Priority // 空の場合はmedium
}

// UpdateTaskInput は部分更新の入力です。nilのフィールドは変更されません。
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Status      *entity.Status
	Priority    *entity.Priority
}

// taskUsecase はタスク操作のユースケースを実装します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create は認証済みユーザーをオーナーとして新しいタスクを作成します。
func (u *taskUsecase) Create(ctx context.Context, ownerID uint, in CreateTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if in.Status == "" {
		in.Status = entity.StatusPending
	}
	if in.Priority == "" {
		in.Priority = entity.PriorityMedium
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, in.Status)
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, in.Priority)
	}

	task := &entity.Task{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      in.Status,
		Priority:    in.Priority,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List はフィルタ・検索・ソートパラメータを正規化し、オーナーのタスクのみを返します。
func (u *taskUsecase) List(ctx context.Context, ownerID uint, p ListParams) ([]entity.Task, error) {
	return u.tasks.List(ctx, BuildListQuery(ownerID, p))
}

// Get はIDでタスクを1件取得します。
// 存在しない場合はErrTaskNotFound、他ユーザーの所有の場合はErrForbiddenを返します。
func (u *taskUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	return u.authorize(ctx, ownerID, id)
}

// Update は与えられたフィールドのみを置き換える部分更新を行います。
// 省略されたフィールドは以前の値を保持します。
func (u *taskUsecase) Update(ctx context.Context, ownerID, id uint, in UpdateTaskInput) (*entity.Task, error) {
	if _, err := u.authorize(ctx, ownerID, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
		}
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Deadline != nil {
		fields["deadline"] = *in.Deadline
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, *in.Status)
		}
		fields["status"] = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, *in.Priority)
		}
		fields["priority"] = *in.Priority
	}

	if len(fields) > 0 {
		if err := u.tasks.UpdateFields(ctx, ownerID, id, fields); err != nil {
			return nil, err
		}
	}

	return u.tasks.FindByID(ctx, id)
}

// Delete はタスクを完全に削除します。復元はできません。
func (u *taskUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	if _, err := u.authorize(ctx, ownerID, id); err != nil {
		return err
	}
	return u.tasks.Delete(ctx, ownerID, id)
}

// authorize はタスクを取得し、所有権を検証します。
// 存在確認を所有権チェックより先に行うため、他ユーザーが存在しないIDを
// 探ってもErrTaskNotFoundになり、実在するタスクの場合のみErrForbiddenになります。
func (u *taskUsecase) authorize(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, ErrForbidden
	}
	return task, nil
}
