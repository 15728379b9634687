// Package device persists the FCM push-token registry for the admin
// mobile app.
package device

import (
	"strings"
	"time"

	"bookly/database/docstore"
	"bookly/models"
)

const docKey = "push_tokens"

type tokenDocument struct {
	Tokens    []models.PushToken `json:"tokens"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

// DeviceRepository manages registered push tokens.
type DeviceRepository interface {
	// Upsert registers a token or refreshes its last-seen timestamp.
	Upsert(token, platform string) error

	// TokenStrings returns the distinct non-empty token values.
	TokenStrings() ([]string, error)

	// Remove drops the given tokens, typically after FCM reports them
	// unregistered.
	Remove(tokens []string) error
}

type FileDeviceRepo struct {
	Store docstore.Store
}

func NewFileDeviceRepo(store docstore.Store) *FileDeviceRepo {
	return &FileDeviceRepo{Store: store}
}

func (r *FileDeviceRepo) Upsert(token, platform string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	var doc tokenDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	updated := false
	for i := range doc.Tokens {
		if doc.Tokens[i].Token == token {
			doc.Tokens[i].LastSeen = now
			if platform != "" {
				doc.Tokens[i].Platform = platform
			}
			updated = true
			break
		}
	}
	if !updated {
		doc.Tokens = append(doc.Tokens, models.PushToken{
			Token:     token,
			Platform:  platform,
			CreatedAt: now,
			LastSeen:  now,
		})
	}
	doc.UpdatedAt = now
	return r.Store.Save(docKey, doc)
}

func (r *FileDeviceRepo) TokenStrings() ([]string, error) {
	var doc tokenDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(doc.Tokens))
	var list []string
	for _, entry := range doc.Tokens {
		token := strings.TrimSpace(entry.Token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		list = append(list, token)
	}
	return list, nil
}

func (r *FileDeviceRepo) Remove(tokens []string) error {
	removeSet := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			removeSet[trimmed] = true
		}
	}
	if len(removeSet) == 0 {
		return nil
	}
	var doc tokenDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return err
	}
	kept := doc.Tokens[:0]
	for _, entry := range doc.Tokens {
		token := strings.TrimSpace(entry.Token)
		if token == "" || removeSet[token] {
			continue
		}
		kept = append(kept, entry)
	}
	doc.Tokens = kept
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.Store.Save(docKey, doc)
}
