// Package lifecycle owns every legal order status transition, the closure
// gating and the audit trail. Operations mutate an order snapshot in memory
// and append exactly one audit entry, or fail without touching it; callers
// persist the result. No I/O happens here.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/models"
)

const SystemUser = "System"

var validNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusNewInquiry:      {models.StatusPendingPricing: true, models.StatusWaitingApproval: true},
	models.StatusPendingPricing:  {models.StatusWaitingApproval: true},
	models.StatusWaitingApproval: {models.StatusConfirmed: true, models.StatusPendingPricing: true},
	models.StatusConfirmed:       {models.StatusDispatched: true, models.StatusClosed: true},
	models.StatusDispatched:      {models.StatusClosed: true},
	models.StatusClosed:          {},
}

func CanTransition(from, to models.OrderStatus) bool {
	return validNext[from][to]
}

type ClientInfo struct {
	ID     string
	Name   string
	Mobile string
}

// NewInquiry builds a fresh order from a client-submitted item list.
// Zero-quantity rows are dropped; an empty result is rejected.
func NewInquiry(client ClientInfo, items []models.OrderItem, now time.Time) (*models.Order, error) {
	valid := activeItems(items)
	if len(valid) == 0 {
		return nil, apperr.Validationf("order must contain at least one item with quantity > 0")
	}

	o := &models.Order{
		ID:            fmt.Sprintf("ORD-%d", now.UnixMilli()),
		ClientID:      client.ID,
		ClientName:    client.Name,
		ClientMobile:  client.Mobile,
		Items:         valid,
		Status:        models.StatusNewInquiry,
		PaymentStatus: models.PaymentPending,
		IsLocked:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	appendAudit(o, now, "Order Created", client.Name, "Initial inquiry submitted")
	return o, nil
}

// SetPricing assigns per-item unit prices (missing products price at 0),
// recomputes the total and sends the quote to the client.
func SetPricing(o *models.Order, prices map[string]float64, actor string, now time.Time) error {
	if o.Status != models.StatusNewInquiry && o.Status != models.StatusPendingPricing {
		return apperr.Validationf("pricing can only be set while the order awaits pricing (status %s)", o.Status)
	}

	for i := range o.Items {
		price := prices[o.Items[i].ProductID]
		subtotal := price * float64(o.Items[i].Quantity)
		o.Items[i].UnitPrice = &price
		o.Items[i].Subtotal = &subtotal
	}
	total := itemsTotal(o.Items)
	o.TotalAmount = &total

	if err := transition(o, models.StatusWaitingApproval, now); err != nil {
		return err
	}
	appendAudit(o, now, "Pricing Set", actor, fmt.Sprintf("Total: ₹%.2f", total))
	return nil
}

// ModifyItemsAdmin replaces the item list while keeping pricing. Every
// surviving item must carry a positive unit price; the order is re-routed
// to the client for approval. Allowed only before confirmation.
func ModifyItemsAdmin(o *models.Order, items []models.OrderItem, actor string, now time.Time) error {
	switch o.Status {
	case models.StatusNewInquiry, models.StatusPendingPricing, models.StatusWaitingApproval:
	default:
		return apperr.Validationf("items can no longer be modified (status %s)", o.Status)
	}

	valid := activeItems(items)
	if len(valid) == 0 {
		return apperr.Validationf("order must contain at least one item with quantity > 0")
	}
	for _, it := range valid {
		if it.UnitPrice == nil || *it.UnitPrice <= 0 {
			return apperr.Validationf("item %s is missing a unit price", it.ProductName)
		}
	}
	for i := range valid {
		subtotal := *valid[i].UnitPrice * float64(valid[i].Quantity)
		valid[i].Subtotal = &subtotal
	}

	o.Items = valid
	total := itemsTotal(valid)
	o.TotalAmount = &total

	if o.Status != models.StatusWaitingApproval {
		if err := transition(o, models.StatusWaitingApproval, now); err != nil {
			return err
		}
	} else {
		o.UpdatedAt = now
	}
	appendAudit(o, now, "Order Items Modified by Admin", actor,
		fmt.Sprintf("Updated to %d item(s), Total: ₹%.2f", len(valid), total))
	return nil
}

// ModifyItemsClient replaces the item list and strips all pricing: a removed
// item loses its price history, so the whole order goes back for re-pricing.
// Rejected once the order is locked.
func ModifyItemsClient(o *models.Order, items []models.OrderItem, actor string, now time.Time) error {
	if o.IsLocked {
		return apperr.Validationf("order is locked and can no longer be modified")
	}
	switch o.Status {
	case models.StatusNewInquiry, models.StatusPendingPricing, models.StatusWaitingApproval:
	default:
		return apperr.Validationf("items can no longer be modified (status %s)", o.Status)
	}

	valid := activeItems(items)
	if len(valid) == 0 {
		return apperr.Validationf("order must contain at least one item with quantity > 0")
	}
	for i := range valid {
		valid[i].UnitPrice = nil
		valid[i].Subtotal = nil
	}

	o.Items = valid
	o.TotalAmount = nil

	if o.Status != models.StatusPendingPricing {
		if err := transition(o, models.StatusPendingPricing, now); err != nil {
			return err
		}
	} else {
		o.UpdatedAt = now
	}
	appendAudit(o, now, "Order Modified", actor, fmt.Sprintf("Updated to %d item(s)", len(valid)))
	return nil
}

// AcceptQuote confirms the priced order and locks it against further client
// item edits.
func AcceptQuote(o *models.Order, actor string, now time.Time) error {
	if o.Status != models.StatusWaitingApproval {
		return apperr.Validationf("only a quote awaiting approval can be accepted (status %s)", o.Status)
	}
	if err := transition(o, models.StatusConfirmed, now); err != nil {
		return err
	}
	o.IsLocked = true
	appendAudit(o, now, "Quote Accepted", actor, "Order confirmed and locked")
	return nil
}

// SetPaymentTerms records cash or credit terms on a confirmed order.
// Credit requires a due date. Status is untouched.
func SetPaymentTerms(o *models.Order, pt models.PaymentType, dueDate *time.Time, actor string, now time.Time) error {
	if o.Status != models.StatusConfirmed {
		return apperr.Validationf("payment terms can only be set on a confirmed order (status %s)", o.Status)
	}
	switch pt {
	case models.PaymentCash:
		dueDate = nil
	case models.PaymentCredit:
		if dueDate == nil {
			return apperr.Validationf("credit payment requires a due date")
		}
	default:
		return apperr.Validationf("invalid payment type %q", pt)
	}

	o.PaymentType = pt
	o.PaymentDueDate = dueDate
	o.UpdatedAt = now

	details := string(pt)
	if dueDate != nil {
		details = fmt.Sprintf("%s - Due: %s", pt, dueDate.Format("2006-01-02"))
	}
	appendAudit(o, now, "Payment Terms Set", actor, details)
	return nil
}

// Dispatch marks the confirmed order as in transit. Payment terms must be
// set first.
func Dispatch(o *models.Order, actor string, now time.Time) error {
	if o.Status != models.StatusConfirmed {
		return apperr.Validationf("only a confirmed order can be dispatched (status %s)", o.Status)
	}
	if o.PaymentType == "" {
		return apperr.Validationf("set payment terms before dispatching")
	}
	if err := transition(o, models.StatusDispatched, now); err != nil {
		return err
	}
	d := now
	o.DispatchDate = &d
	appendAudit(o, now, "Order Dispatched", actor, "Materials in transit")
	return nil
}

// MarkPaid records the payment and re-evaluates closure.
func MarkPaid(o *models.Order, actor string, now time.Time) error {
	if o.Status != models.StatusConfirmed && o.Status != models.StatusDispatched {
		return apperr.Validationf("payment cannot be recorded in status %s", o.Status)
	}
	if o.PaymentStatus == models.PaymentPaid {
		return apperr.Validationf("payment is already marked as paid")
	}

	o.PaymentStatus = models.PaymentPaid
	o.UpdatedAt = now

	details := "Payment marked as paid"
	if o.TotalAmount != nil {
		details = fmt.Sprintf("Payment marked as PAID. Amount: ₹%.2f", *o.TotalAmount)
	}
	appendAudit(o, now, "Payment Received", actor, details)
	return reevaluateClosure(o, now)
}

// ConfirmReceipt records goods receipt with a mandatory 1-5 rating and
// re-evaluates closure.
func ConfirmReceipt(o *models.Order, rating int, feedback, actor string, now time.Time) error {
	if o.Status != models.StatusDispatched {
		return apperr.Validationf("receipt can only be confirmed on a dispatched order (status %s)", o.Status)
	}
	if o.GoodsReceivedDate != nil {
		return apperr.Validationf("goods receipt is already confirmed")
	}
	if rating < 1 || rating > 5 {
		return apperr.Validationf("rating must be between 1 and 5")
	}

	d := now
	o.GoodsReceivedDate = &d
	o.Rating = rating
	o.Feedback = feedback
	o.UpdatedAt = now

	appendAudit(o, now, "Goods Receipt Confirmed", actor,
		fmt.Sprintf("Confirmed receipt with %d stars", rating))
	return reevaluateClosure(o, now)
}

// SnoozeReminder pushes the payment reminder forward by the given number of
// days, starting from the current reminder date or the due date.
func SnoozeReminder(o *models.Order, days int, actor string, now time.Time) error {
	if days <= 0 {
		return apperr.Validationf("snooze days must be positive")
	}
	base := o.PaymentReminderDate
	if base == nil {
		base = o.PaymentDueDate
	}
	if base == nil {
		return apperr.Validationf("order has no payment due date to snooze from")
	}

	next := base.AddDate(0, 0, days)
	o.PaymentReminderDate = &next
	o.UpdatedAt = now
	appendAudit(o, now, "Payment Reminder Snoozed", actor,
		"Reminder extended to "+next.Format("2006-01-02"))
	return nil
}

// SetReminderDate replaces the payment reminder date outright.
func SetReminderDate(o *models.Order, date time.Time, actor string, now time.Time) error {
	o.PaymentReminderDate = &date
	o.UpdatedAt = now
	appendAudit(o, now, "Payment Due Date Extended", actor,
		"New reminder date: "+date.Format("2006-01-02"))
	return nil
}

// StaleOrders selects unpriced or unapproved orders older than the
// threshold. These are the only orders the cleanup sweep may delete.
func StaleOrders(orders []models.Order, now time.Time, threshold time.Duration) []models.Order {
	stale := make([]models.Order, 0)
	for _, o := range orders {
		if o.Status != models.StatusNewInquiry && o.Status != models.StatusPendingPricing {
			continue
		}
		if now.Sub(o.CreatedAt) > threshold {
			stale = append(stale, o)
		}
	}
	return stale
}

// reevaluateClosure is the single place an order may close: payment received
// and goods confirmed, regardless of which arrived last.
func reevaluateClosure(o *models.Order, now time.Time) error {
	if o.Status == models.StatusClosed {
		return nil
	}
	if o.PaymentStatus != models.PaymentPaid || o.GoodsReceivedDate == nil {
		return nil
	}
	if err := transition(o, models.StatusClosed, now); err != nil {
		return err
	}
	appendAudit(o, now, "Order Closed", SystemUser, "Auto-closed after payment and delivery")
	return nil
}

func transition(o *models.Order, to models.OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return apperr.Validationf("cannot move order from %s to %s", o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

func appendAudit(o *models.Order, now time.Time, action, user, details string) {
	o.AuditLog = append(o.AuditLog, models.AuditEntry{
		Timestamp: now,
		Action:    action,
		User:      user,
		Details:   details,
	})
}

func activeItems(items []models.OrderItem) []models.OrderItem {
	valid := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			valid = append(valid, it)
		}
	}
	return valid
}

func itemsTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		if it.Subtotal != nil {
			total += *it.Subtotal
		}
	}
	return total
}
