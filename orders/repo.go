// Package orders persists the order aggregate as the flattened row the
// store contract defines: JSON blobs for items and audit log, a meta bag
// for the optional payment/rating fields, everything else as scalar
// columns.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/store"
)

const Table = "orders"

type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{store: s}
}

// meta is the extension bag persisted as meta_json. It carries the fields
// the flattened row has no column for.
type meta struct {
	ClientID            string     `json:"clientId,omitempty"`
	PaymentType         string     `json:"paymentType,omitempty"`
	PaymentDueDate      *time.Time `json:"paymentDueDate,omitempty"`
	PaymentReminderDate *time.Time `json:"paymentReminderDate,omitempty"`
	Rating              int        `json:"rating,omitempty"`
	Feedback            string     `json:"feedback,omitempty"`
}

func toRow(o *models.Order) (store.Row, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	auditJSON, err := json.Marshal(o.AuditLog)
	if err != nil {
		return nil, fmt.Errorf("marshal audit log: %w", err)
	}
	metaJSON, err := json.Marshal(meta{
		ClientID:            o.ClientID,
		PaymentType:         string(o.PaymentType),
		PaymentDueDate:      o.PaymentDueDate,
		PaymentReminderDate: o.PaymentReminderDate,
		Rating:              o.Rating,
		Feedback:            o.Feedback,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal meta: %w", err)
	}

	var total float64
	if o.TotalAmount != nil {
		total = *o.TotalAmount
	}

	row := store.Row{
		"order_id":       o.ID,
		"client_name":    o.ClientName,
		"mobile":         o.ClientMobile,
		"status":         string(o.Status),
		"items_json":     string(itemsJSON),
		"total_amount":   total,
		"is_locked":      o.IsLocked,
		"audit_log":      string(auditJSON),
		"created_at":     o.CreatedAt.UTC().Format(time.RFC3339Nano),
		"payment_status": string(o.PaymentStatus),
		"meta_json":      string(metaJSON),
	}
	if o.DispatchDate != nil {
		row["dispatch_date"] = o.DispatchDate.UTC().Format(time.RFC3339Nano)
	}
	if o.GoodsReceivedDate != nil {
		row["goods_received_date"] = o.GoodsReceivedDate.UTC().Format(time.RFC3339Nano)
	}
	return row, nil
}

func fromRow(row store.Row) (*models.Order, error) {
	o := &models.Order{
		ID:            rowString(row, "order_id"),
		ClientName:    rowString(row, "client_name"),
		ClientMobile:  rowString(row, "mobile"),
		Status:        models.OrderStatus(rowString(row, "status")),
		IsLocked:      row["is_locked"] == true,
		PaymentStatus: models.PaymentStatus(rowString(row, "payment_status")),
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}

	if raw := rowString(row, "items_json"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &o.Items); err != nil {
			return nil, fmt.Errorf("order %s: parse items: %w", o.ID, err)
		}
	}
	if raw := rowString(row, "audit_log"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &o.AuditLog); err != nil {
			return nil, fmt.Errorf("order %s: parse audit log: %w", o.ID, err)
		}
	}

	var m meta
	if raw := rowString(row, "meta_json"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("order %s: parse meta: %w", o.ID, err)
		}
	}
	o.ClientID = m.ClientID
	o.PaymentType = models.PaymentType(m.PaymentType)
	o.PaymentDueDate = m.PaymentDueDate
	o.PaymentReminderDate = m.PaymentReminderDate
	o.Rating = m.Rating
	o.Feedback = m.Feedback

	// Status carries whether pricing happened: before the quote stage the
	// stored total is a placeholder zero, from waiting_approval on it is
	// authoritative even when it is legitimately 0.
	if total, ok := row["total_amount"].(float64); ok && priced(o.Status) {
		o.TotalAmount = &total
	}

	if t, err := rowTime(row, "created_at"); err == nil && t != nil {
		o.CreatedAt = *t
		o.UpdatedAt = *t
	}
	if t, err := rowTime(row, "dispatch_date"); err == nil {
		o.DispatchDate = t
	}
	if t, err := rowTime(row, "goods_received_date"); err == nil {
		o.GoodsReceivedDate = t
	}
	return o, nil
}

func priced(s models.OrderStatus) bool {
	switch s {
	case models.StatusWaitingApproval, models.StatusConfirmed,
		models.StatusDispatched, models.StatusClosed:
		return true
	}
	return false
}

func rowString(row store.Row, key string) string {
	s, _ := row[key].(string)
	return s
}

func rowTime(row store.Row, key string) (*time.Time, error) {
	raw, _ := row[key].(string)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		o, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*models.Order, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if rowString(row, "order_id") == id {
			return fromRow(row)
		}
	}
	return nil, apperr.ErrOrderNotFound
}

func (r *Repo) Insert(ctx context.Context, o *models.Order) error {
	row, err := toRow(o)
	if err != nil {
		return err
	}
	return r.store.InsertRow(ctx, Table, row)
}

func (r *Repo) Update(ctx context.Context, o *models.Order) error {
	row, err := toRow(o)
	if err != nil {
		return err
	}
	delete(row, "order_id")
	n, err := r.store.UpdateRows(ctx, Table, store.Row{"order_id": o.ID}, row)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrOrderNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	n, err := r.store.DeleteRows(ctx, Table, store.Row{"order_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrOrderNotFound
	}
	return nil
}
