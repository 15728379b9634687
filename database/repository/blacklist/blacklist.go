// Package blacklist persists the deny list of barred identities.
package blacklist

import (
	"strings"
	"time"
	"unicode"

	"bookly/database/docstore"
	"bookly/models"
)

const docKey = "blacklist"

type blacklistDocument struct {
	Entries   []models.BlacklistEntry `json:"entries"`
	UpdatedAt string                  `json:"updated_at,omitempty"`
}

// BlacklistRepository checks and extends the deny list.
type BlacklistRepository interface {
	List() ([]models.BlacklistEntry, error)

	// IsBlocked matches any non-empty identity key against the stored
	// entries: normalized email, digits-only phone, or exact IP.
	IsBlocked(email, phone, ip string) (bool, error)

	// Add inserts an entry unless one of its identity keys already
	// exists (first writer wins). Entries with no identity are dropped.
	Add(entry models.BlacklistEntry) error
}

type FileBlacklistRepo struct {
	Store docstore.Store
}

func NewFileBlacklistRepo(store docstore.Store) *FileBlacklistRepo {
	return &FileBlacklistRepo{Store: store}
}

// NormalizeEmail lowercases and trims an email for deny-list matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips every non-digit rune.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *FileBlacklistRepo) List() ([]models.BlacklistEntry, error) {
	var doc blacklistDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func (r *FileBlacklistRepo) IsBlocked(email, phone, ip string) (bool, error) {
	emailKey := NormalizeEmail(email)
	phoneKey := NormalizePhone(phone)
	ipKey := strings.TrimSpace(ip)

	entries, err := r.List()
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		entryEmail := NormalizeEmail(entry.Email)
		entryPhone := NormalizePhone(entry.Phone)
		entryIP := strings.TrimSpace(entry.IP)
		if emailKey != "" && entryEmail != "" && emailKey == entryEmail {
			return true, nil
		}
		if phoneKey != "" && entryPhone != "" && phoneKey == entryPhone {
			return true, nil
		}
		if ipKey != "" && entryIP != "" && ipKey == entryIP {
			return true, nil
		}
	}
	return false, nil
}

func (r *FileBlacklistRepo) Add(entry models.BlacklistEntry) error {
	email := NormalizeEmail(entry.Email)
	phone := NormalizePhone(entry.Phone)
	ip := strings.TrimSpace(entry.IP)
	if email == "" && phone == "" && ip == "" {
		return nil
	}

	var doc blacklistDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return err
	}
	for _, existing := range doc.Entries {
		if email != "" && NormalizeEmail(existing.Email) == email {
			return nil
		}
		if phone != "" && NormalizePhone(existing.Phone) == phone {
			return nil
		}
		if ip != "" && strings.TrimSpace(existing.IP) == ip {
			return nil
		}
	}

	doc.Entries = append(doc.Entries, models.BlacklistEntry{
		Email:     email,
		Phone:     phone,
		IP:        ip,
		Name:      strings.TrimSpace(entry.Name),
		Reason:    strings.TrimSpace(entry.Reason),
		RequestID: strings.TrimSpace(entry.RequestID),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.Store.Save(docKey, doc)
}
