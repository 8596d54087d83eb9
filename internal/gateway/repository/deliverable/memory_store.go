package deliverable

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	meta    Object
	content []byte
}

// MemoryStore is the fallback when no S3 endpoint is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	byKey map[string]memoryObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[string]memoryObject)}
}

func (s *MemoryStore) Put(_ context.Context, taskID, name, contentType string, content []byte) (Object, error) {
	if s == nil {
		return Object{}, fmt.Errorf("store is nil")
	}
	taskID = strings.TrimSpace(taskID)
	name = strings.TrimSpace(name)
	if taskID == "" {
		return Object{}, fmt.Errorf("task id is required")
	}
	if name == "" {
		return Object{}, fmt.Errorf("file name is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	meta := Object{
		TaskID:      taskID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		UploadedAt:  time.Now().UTC(),
	}
	stored := make([]byte, len(content))
	copy(stored, content)

	s.mu.Lock()
	s.byKey[objectKey(taskID, name)] = memoryObject{meta: meta, content: stored}
	s.mu.Unlock()
	return meta, nil
}

func (s *MemoryStore) Get(_ context.Context, taskID, name string) ([]byte, Object, error) {
	if s == nil {
		return nil, Object{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	obj, ok := s.byKey[objectKey(taskID, name)]
	s.mu.RUnlock()
	if !ok {
		return nil, Object{}, fmt.Errorf("deliverable %s/%s not found", strings.TrimSpace(taskID), strings.TrimSpace(name))
	}
	content := make([]byte, len(obj.content))
	copy(content, obj.content)
	return content, obj.meta, nil
}

func (s *MemoryStore) List(_ context.Context, taskID string) ([]Object, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	id := strings.TrimSpace(taskID)
	if id == "" {
		return nil, fmt.Errorf("task id is required")
	}
	s.mu.RLock()
	var out []Object
	for _, obj := range s.byKey {
		if obj.meta.TaskID == id {
			out = append(out, obj.meta)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, taskID, name string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	delete(s.byKey, objectKey(taskID, name))
	s.mu.Unlock()
	return nil
}
