// Package catalog reads and writes the product table. The lifecycle
// controller only ever reads it.
package catalog

import (
	"context"
	"strings"

	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/store"
)

const Table = "products"

type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{store: s}
}

func (r *Repo) List(ctx context.Context, category string, includeDisabled bool) ([]models.Product, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		var p models.Product
		if err := store.DecodeRow(row, &p); err != nil {
			return nil, err
		}
		if p.IsDisabled && !includeDisabled {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*models.Product, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		var p models.Product
		if err := store.DecodeRow(row, &p); err != nil {
			return nil, err
		}
		if p.Id == id {
			return &p, nil
		}
	}
	return nil, apperr.ErrProductNotFound
}

func (r *Repo) Insert(ctx context.Context, p *models.Product) error {
	row, err := store.EncodeRow(p)
	if err != nil {
		return err
	}
	return r.store.InsertRow(ctx, Table, row)
}

func (r *Repo) Update(ctx context.Context, p *models.Product) error {
	row, err := store.EncodeRow(p)
	if err != nil {
		return err
	}
	delete(row, "id")
	n, err := r.store.UpdateRows(ctx, Table, store.Row{"id": p.Id}, row)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrProductNotFound
	}
	return nil
}
