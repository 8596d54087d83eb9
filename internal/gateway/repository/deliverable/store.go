// Package deliverable stores the files freelancers upload against tasks
// and the reference images clients add to moodboards.
package deliverable

import (
	"context"
	"time"
)

// Object is stored file metadata.
type Object struct {
	TaskID      string    `json:"taskId"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Store is the file persistence boundary. Bytes live here; the task record
// only keeps references.
type Store interface {
	Put(ctx context.Context, taskID, name, contentType string, content []byte) (Object, error)
	Get(ctx context.Context, taskID, name string) ([]byte, Object, error)
	List(ctx context.Context, taskID string) ([]Object, error)
	Delete(ctx context.Context, taskID, name string) error
}
