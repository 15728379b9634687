// Package customer tracks admin-side customer list state, currently just
// the hidden-customer keys.
package customer

import (
	"strings"

	"bookly/database/docstore"
)

const docKey = "customers_hidden"

type hiddenDocument struct {
	Hidden []string `json:"hidden"`
}

// CustomerRepository manages which customer keys the admin console hides.
type CustomerRepository interface {
	Hidden() ([]string, error)
	Hide(key string) (int, error)
	Unhide(key string) (int, error)
}

type FileCustomerRepo struct {
	Store docstore.Store
}

func NewFileCustomerRepo(store docstore.Store) *FileCustomerRepo {
	return &FileCustomerRepo{Store: store}
}

func (r *FileCustomerRepo) load() ([]string, error) {
	var doc hiddenDocument
	if _, err := r.Store.Load(docKey, &doc); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(doc.Hidden))
	var list []string
	for _, key := range doc.Hidden {
		key = strings.TrimSpace(key)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, key)
	}
	return list, nil
}

func (r *FileCustomerRepo) Hidden() ([]string, error) {
	return r.load()
}

func (r *FileCustomerRepo) Hide(key string) (int, error) {
	hidden, err := r.load()
	if err != nil {
		return 0, err
	}
	for _, item := range hidden {
		if item == key {
			return len(hidden), nil
		}
	}
	hidden = append(hidden, key)
	if err := r.Store.Save(docKey, hiddenDocument{Hidden: hidden}); err != nil {
		return 0, err
	}
	return len(hidden), nil
}

func (r *FileCustomerRepo) Unhide(key string) (int, error) {
	hidden, err := r.load()
	if err != nil {
		return 0, err
	}
	kept := hidden[:0]
	for _, item := range hidden {
		if item != key {
			kept = append(kept, item)
		}
	}
	if err := r.Store.Save(docKey, hiddenDocument{Hidden: kept}); err != nil {
		return 0, err
	}
	return len(kept), nil
}
