// Package notifystate persists which admin notifications have been read,
// capped to the most recent entries.
package notifystate

import (
	"strings"
	"time"

	"bookly/database/docstore"
)

const (
	docKey = "notifications_state"
	maxIDs = 2000
)

type stateDocument struct {
	ReadIDs   []string `json:"read_ids"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// NotifyStateRepository tracks read notification ids.
type NotifyStateRepository interface {
	ReadIDs() ([]string, string, error)

	// Merge unions the incoming ids with the stored set, keeping only
	// the most recent maxIDs, and returns the merged list.
	Merge(ids []string) ([]string, error)
}

type FileNotifyStateRepo struct {
	Store docstore.Store
}

func NewFileNotifyStateRepo(store docstore.Store) *FileNotifyStateRepo {
	return &FileNotifyStateRepo{Store: store}
}

func normalizeIDs(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, value := range raw {
		id := strings.TrimSpace(value)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) > maxIDs {
		out = out[len(out)-maxIDs:]
	}
	return out
}

func (r *FileNotifyStateRepo) ReadIDs() ([]string, string, error) {
	var doc stateDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return nil, "", err
	}
	return normalizeIDs(doc.ReadIDs), doc.UpdatedAt, nil
}

func (r *FileNotifyStateRepo) Merge(ids []string) ([]string, error) {
	current, _, err := r.ReadIDs()
	if err != nil {
		return nil, err
	}
	merged := normalizeIDs(append(current, normalizeIDs(ids)...))
	err = r.Store.Save(docKey, stateDocument{
		ReadIDs:   merged,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}
