// Package touring persists the touring schedule: which city is current
// for a given date.
package touring

import (
	"sort"
	"strings"
	"time"

	"bookly/database/docstore"
	"bookly/models"
)

const docKey = "tour_schedule"

type touringDocument struct {
	Touring   []models.TouringEntry `json:"touring"`
	UpdatedAt string                `json:"updated_at,omitempty"`
}

// TouringRepository reads and replaces the touring schedule.
type TouringRepository interface {
	List() ([]models.TouringEntry, error)
	Save(entries []models.TouringEntry) error

	// CityForDate returns the city whose inclusive range contains the
	// "2006-01-02" date key, or "" when none matches.
	CityForDate(dateKey string) (string, error)
}

type FileTouringRepo struct {
	Store docstore.Store
}

func NewFileTouringRepo(store docstore.Store) *FileTouringRepo {
	return &FileTouringRepo{Store: store}
}

func sortKey(e models.TouringEntry) string {
	entryType := strings.ToLower(e.Type)
	if entryType == "" {
		entryType = "tour"
	}
	return e.Start + "|" + e.End + "|" + strings.ToLower(e.City) + "|" + entryType
}

func (r *FileTouringRepo) List() ([]models.TouringEntry, error) {
	var doc touringDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return nil, err
	}
	entries := doc.Touring
	sort.Slice(entries, func(i, j int) bool {
		return sortKey(entries[i]) < sortKey(entries[j])
	})
	return entries, nil
}

func (r *FileTouringRepo) Save(entries []models.TouringEntry) error {
	if entries == nil {
		entries = []models.TouringEntry{}
	}
	sort.Slice(entries, func(i, j int) bool {
		return sortKey(entries[i]) < sortKey(entries[j])
	})
	return r.Store.Save(docKey, touringDocument{
		Touring:   entries,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *FileTouringRepo) CityForDate(dateKey string) (string, error) {
	entries, err := r.List()
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.City == "" || entry.Start == "" || entry.End == "" {
			continue
		}
		if entry.Start <= dateKey && dateKey <= entry.End {
			return entry.City, nil
		}
	}
	return "", nil
}
