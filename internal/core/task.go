package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a standalone to-do item. Tasks have no relationship to
// activities or day records; they only share the persisted bundle.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

// NewTask builds a task with a fresh id and now as creation time.
// Returns false when the trimmed text is empty.
func NewTask(text string, now time.Time) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}
	return Task{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now.UnixMilli(),
	}, true
}
