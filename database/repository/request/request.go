package request

import (
	"fmt"
	"strings"

	"bookly/database/docstore"
	"bookly/models"
)

const (
	activeKey  = "requests"
	archiveKey = "declined"
)

type requestDocument struct {
	Requests []models.BookingRequest `json:"requests"`
}

// FileRequestRepo stores requests as two whole documents in the docstore.
type FileRequestRepo struct {
	Store docstore.Store
}

func NewFileRequestRepo(store docstore.Store) *FileRequestRepo {
	return &FileRequestRepo{Store: store}
}

func (r *FileRequestRepo) load(key string) ([]models.BookingRequest, error) {
	var doc requestDocument
	if _, err := r.Store.Load(key, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Requests {
		doc.Requests[i].Normalize()
	}
	return doc.Requests, nil
}

func (r *FileRequestRepo) save(key string, requests []models.BookingRequest) error {
	if requests == nil {
		requests = []models.BookingRequest{}
	}
	return r.Store.Save(key, requestDocument{Requests: requests})
}

func (r *FileRequestRepo) Active() ([]models.BookingRequest, error) {
	return r.load(activeKey)
}

func (r *FileRequestRepo) Archived() ([]models.BookingRequest, error) {
	return r.load(archiveKey)
}

func (r *FileRequestRepo) SaveActive(requests []models.BookingRequest) error {
	return r.save(activeKey, requests)
}

func (r *FileRequestRepo) GetByID(id string) (*models.BookingRequest, error) {
	requests, err := r.load(activeKey)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			req := requests[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (r *FileRequestRepo) Append(req models.BookingRequest) error {
	requests, err := r.load(activeKey)
	if err != nil {
		return err
	}
	return r.save(activeKey, append(requests, req))
}

func (r *FileRequestRepo) Update(req models.BookingRequest) error {
	requests, err := r.load(activeKey)
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].ID == req.ID {
			requests[i] = req
			return r.save(activeKey, requests)
		}
	}
	return fmt.Errorf("request %s not found", req.ID)
}

func (r *FileRequestRepo) Archive(req models.BookingRequest) error {
	archived, err := r.load(archiveKey)
	if err != nil {
		return err
	}
	kept := archived[:0]
	for _, item := range archived {
		if item.ID != req.ID {
			kept = append(kept, item)
		}
	}
	return r.save(archiveKey, append(kept, req))
}

func (r *FileRequestRepo) PurgeIdentity(key string) (int, error) {
	target := strings.ToLower(strings.TrimSpace(key))
	if target == "" {
		return 0, nil
	}
	removed := 0
	for _, docKey := range []string{activeKey, archiveKey} {
		requests, err := r.load(docKey)
		if err != nil {
			return removed, err
		}
		kept := make([]models.BookingRequest, 0, len(requests))
		for _, req := range requests {
			email := strings.ToLower(strings.TrimSpace(req.Email))
			phone := strings.ToLower(strings.TrimSpace(req.Phone))
			id := strings.ToLower(strings.TrimSpace(req.ID))
			if email == target || phone == target || id == target {
				removed++
				continue
			}
			kept = append(kept, req)
		}
		if err := r.save(docKey, kept); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
