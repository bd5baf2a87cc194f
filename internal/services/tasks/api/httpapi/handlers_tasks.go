package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/platform/requestctx"
	"github.com/louisbranch/weathertask/internal/services/tasks/task"
)

var errInvalidTaskID = apperrors.WithMetadata(apperrors.CodeValidation, "task id must be a positive integer", map[string]string{"Field": "id"})

// taskPayload is the JSON shape of a task in requests and responses.
type taskPayload struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func toPayload(t task.Task) taskPayload {
	return taskPayload{ID: t.ID, Title: t.Title, Status: string(t.Status)}
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, _ := requestctx.IdentityFromContext(r.Context())
	items, err := h.tasks.ListTasks(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	payload := make([]taskPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, toPayload(item))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := requestctx.IdentityFromContext(r.Context())
	var req taskPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.tasks.CreateTask(r.Context(), identity, req.Title, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(created))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := requestctx.IdentityFromContext(r.Context())
	taskID, err := taskIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req taskPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.tasks.UpdateStatus(r.Context(), identity, taskID, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(updated))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := requestctx.IdentityFromContext(r.Context())
	taskID, err := taskIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.tasks.DeleteTask(r.Context(), identity, taskID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidTaskID
	}
	return id, nil
}
