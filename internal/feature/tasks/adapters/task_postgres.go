// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tasktracker/internal/feature/tasks/domain/entity"
	"tasktracker/internal/feature/tasks/usecase"
)

// taskPostgres はTaskRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type taskPostgres struct {
	db *gorm.DB
}

// taskPostgresがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskPostgres) Create(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID はIDでタスクを取得します。
// タスクが存在しない場合、usecase.ErrTaskNotFoundを返します。
func (r *taskPostgres) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List はクエリ仕様を動的なWHERE/ORDER句へ変換して実行します。
// オーナーによる絞り込みは常に最初に適用され、他の条件とANDで結合されます。
func (r *taskPostgres) List(ctx context.Context, q usecase.ListQuery) ([]entity.Task, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", q.OwnerID)

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Search != "" {
		// 大文字小文字を区別しない部分一致、ORはtitle/description間のみ
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var rows []entity.Task
	if err := tx.Order(orderClause(q)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFields は与えられたカラムのみを置き換えます。
// user_id条件はSQLレベルの多層防御です（所有権はユースケース層で検証済み）。
func (r *taskPostgres) UpdateFields(ctx context.Context, ownerID, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields).Error
}

// Delete はタスクを物理削除します。
func (r *taskPostgres) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&entity.Task{}).Error
}

// orderClause は正規化済みソートキーをORDER BY句へ変換します。
// キーはユースケース層でホワイトリスト済みのため、そのまま連結して安全です。
func orderClause(q usecase.ListQuery) string {
	var column string
	switch q.SortBy {
	case usecase.SortByDeadline:
		column = "deadline"
	case usecase.SortByPriority:
		// 文字列カラムのため辞書順ソートになる（仕様上の互換挙動）
		column = "priority"
	default:
		column = "created_at"
	}

	if q.Desc {
		return column + " DESC"
	}
	return column + " ASC"
}
