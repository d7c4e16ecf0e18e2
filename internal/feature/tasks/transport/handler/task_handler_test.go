package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/feature/tasks/domain/entity"
	"tasktracker/internal/feature/tasks/usecase"
	jwtmw "tasktracker/internal/platform/jwt"
)

// mockTaskUsecase is a mock implementation of the TaskUsecase interface.
type mockTaskUsecase struct {
	CreateFunc func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error)
	ListFunc   func(ctx context.Context, ownerID uint, p usecase.ListParams) ([]entity.Task, error)
	GetFunc    func(ctx context.Context, ownerID, id uint) (*entity.Task, error)
	UpdateFunc func(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error)
	DeleteFunc func(ctx context.Context, ownerID, id uint) error
}

func (m *mockTaskUsecase) Create(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, in)
	}
	return &entity.Task{ID: 1, UserID: ownerID, Title: in.Title, Status: entity.StatusPending, Priority: entity.PriorityMedium}, nil
}

func (m *mockTaskUsecase) List(ctx context.Context, ownerID uint, p usecase.ListParams) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, p)
	}
	return nil, nil
}

func (m *mockTaskUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID, id)
	}
	return nil, usecase.ErrTaskNotFound
}

func (m *mockTaskUsecase) Update(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, id, in)
	}
	return nil, usecase.ErrTaskNotFound
}

func (m *mockTaskUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return nil
}

// setupRouter wires the handler behind a middleware that injects the
// authenticated user ID, the same way the real auth middleware does.
func setupRouter(uc TaskUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(uc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	})
	r.POST("/tasks", h.Create)
	r.GET("/tasks", h.List)
	r.GET("/tasks/:id", h.Get)
	r.PUT("/tasks/:id", h.Update)
	r.DELETE("/tasks/:id", h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("success: task created with owner from context", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			CreateFunc: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
				assert.Equal(t, uint(42), ownerID)
				assert.Equal(t, "write report", in.Title)
				assert.Equal(t, entity.PriorityHigh, in.Priority)
				return &entity.Task{ID: 7, UserID: ownerID, Title: in.Title, Status: entity.StatusPending, Priority: in.Priority}, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPost, "/tasks", gin.H{"title": "write report", "priority": "high"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(7), resp["id"])
		assert.Equal(t, float64(42), resp["userId"])
		assert.Equal(t, "write report", resp["title"])
	})

	t.Run("failure: missing title", func(t *testing.T) {
		called := false
		mockUC := &mockTaskUsecase{
			CreateFunc: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
				called = true
				return nil, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPost, "/tasks", gin.H{"description": "no title"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called, "usecase should not be called for an invalid body")
	})

	t.Run("failure: unknown priority", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			CreateFunc: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
				return nil, usecase.ErrInvalidTask
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPost, "/tasks", gin.H{"title": "x", "priority": "urgent"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failure: store error stays opaque", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			CreateFunc: func(ctx context.Context, ownerID uint, in usecase.CreateTaskInput) (*entity.Task, error) {
				return nil, errors.New("connection refused")
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPost, "/tasks", gin.H{"title": "x"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"server error"}`, w.Body.String())
	})

	t.Run("failure: no authenticated user in context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		h := NewTaskHandler(&mockTaskUsecase{})
		r := gin.New()
		// No middleware: context has no user ID
		r.POST("/tasks", h.Create)

		w := doJSON(r, http.MethodPost, "/tasks", gin.H{"title": "x"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Run("query params are passed through", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			ListFunc: func(ctx context.Context, ownerID uint, p usecase.ListParams) ([]entity.Task, error) {
				assert.Equal(t, uint(42), ownerID)
				assert.Equal(t, usecase.ListParams{
					Status:    "pending",
					Search:    "report",
					SortBy:    "deadline",
					SortOrder: "desc",
				}, p)
				return []entity.Task{
					{ID: 1, UserID: 42, Title: "write report", Status: entity.StatusPending, Priority: entity.PriorityMedium},
				}, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodGet, "/tasks?status=pending&search=report&sortBy=deadline&sortOrder=desc", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "write report", resp[0]["title"])
	})

	t.Run("empty list is a JSON array, not null", func(t *testing.T) {
		r := setupRouter(&mockTaskUsecase{}, 42)

		w := doJSON(r, http.MethodGet, "/tasks", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("failure: store error stays opaque", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			ListFunc: func(ctx context.Context, ownerID uint, p usecase.ListParams) ([]entity.Task, error) {
				return nil, errors.New("connection refused")
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodGet, "/tasks", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		mockUC := &mockTaskUsecase{
			GetFunc: func(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
				assert.Equal(t, uint(42), ownerID)
				assert.Equal(t, uint(10), id)
				return &entity.Task{ID: 10, UserID: 42, Title: "write report", Deadline: &deadline, Status: entity.StatusPending, Priority: entity.PriorityMedium}, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodGet, "/tasks/10", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(10), resp["id"])
		assert.Equal(t, "pending", resp["status"])
	})

	t.Run("failure: malformed id is not found", func(t *testing.T) {
		called := false
		mockUC := &mockTaskUsecase{
			GetFunc: func(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
				called = true
				return nil, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodGet, "/tasks/not-a-number", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
		assert.False(t, called, "usecase should not be called for a malformed id")
	})

	t.Run("failure: missing task", func(t *testing.T) {
		r := setupRouter(&mockTaskUsecase{}, 42)

		w := doJSON(r, http.MethodGet, "/tasks/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
	})

	t.Run("failure: another owner's task", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			GetFunc: func(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
				return nil, usecase.ErrForbidden
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodGet, "/tasks/10", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"not authorized"}`, w.Body.String())
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("success: only provided fields are forwarded", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			UpdateFunc: func(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error) {
				require.NotNil(t, in.Status)
				assert.Equal(t, entity.StatusCompleted, *in.Status)
				assert.Nil(t, in.Title)
				assert.Nil(t, in.Description)
				assert.Nil(t, in.Deadline)
				assert.Nil(t, in.Priority)
				return &entity.Task{ID: id, UserID: ownerID, Title: "write report", Status: entity.StatusCompleted, Priority: entity.PriorityMedium}, nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPut, "/tasks/10", gin.H{"status": "completed"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "completed", resp["status"])
	})

	t.Run("failure: malformed id is not found", func(t *testing.T) {
		r := setupRouter(&mockTaskUsecase{}, 42)

		w := doJSON(r, http.MethodPut, "/tasks/abc", gin.H{"status": "completed"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("failure: invalid field value", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			UpdateFunc: func(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error) {
				return nil, usecase.ErrInvalidTask
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPut, "/tasks/10", gin.H{"status": "done"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failure: another owner's task", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			UpdateFunc: func(ctx context.Context, ownerID, id uint, in usecase.UpdateTaskInput) (*entity.Task, error) {
				return nil, usecase.ErrForbidden
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodPut, "/tasks/10", gin.H{"title": "hijack"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deleted := false
		mockUC := &mockTaskUsecase{
			DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
				assert.Equal(t, uint(42), ownerID)
				assert.Equal(t, uint(10), id)
				deleted = true
				return nil
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodDelete, "/tasks/10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"task removed"}`, w.Body.String())
		assert.True(t, deleted)
	})

	t.Run("failure: missing task", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
				return usecase.ErrTaskNotFound
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodDelete, "/tasks/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("failure: another owner's task", func(t *testing.T) {
		mockUC := &mockTaskUsecase{
			DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
				return usecase.ErrForbidden
			},
		}
		r := setupRouter(mockUC, 42)

		w := doJSON(r, http.MethodDelete, "/tasks/10", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
