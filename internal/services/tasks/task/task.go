// Package task defines the owner-scoped task model and its status values.
package task

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

var (
	// ErrEmptyTitle indicates a missing task title.
	ErrEmptyTitle = apperrors.WithMetadata(apperrors.CodeValidation, "title is required", map[string]string{"Field": "title"})
	// ErrEmptyStatus indicates a status update without a status.
	ErrEmptyStatus = apperrors.WithMetadata(apperrors.CodeValidation, "status is required", map[string]string{"Field": "status"})
	// ErrInvalidStatus indicates a status outside NEW, IN_PROGRESS, DONE.
	ErrInvalidStatus = apperrors.WithMetadata(apperrors.CodeValidation, "status must be one of NEW, IN_PROGRESS, DONE", map[string]string{"Field": "status"})
	// ErrNotFound indicates a task id with no visible row.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "task not found")
)

// Task is a single to-do item owned by exactly one account.
type Task struct {
	ID        int64
	AccountID int64
	Title     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the task belongs to accountID.
func (t Task) OwnedBy(accountID int64) bool {
	return accountID > 0 && t.AccountID == accountID
}

// ParseStatus validates a status value. Matching ignores case and
// surrounding whitespace; the result is canonical.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch normalized {
	case StatusNew, StatusInProgress, StatusDone:
		return normalized, nil
	case "":
		return "", ErrEmptyStatus
	default:
		return "", ErrInvalidStatus
	}
}

// StatusOrDefault parses value, treating blank as StatusNew.
func StatusOrDefault(value string) (Status, error) {
	if strings.TrimSpace(value) == "" {
		return StatusNew, nil
	}
	return ParseStatus(value)
}

// NormalizeTitle trims a title and rejects blank values.
func NormalizeTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}
