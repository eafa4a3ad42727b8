package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/models"
)

var (
	t0     = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	client = ClientInfo{ID: "CLI-1", Name: "Meena Traders", Mobile: "9876543210"}
)

func inquiryItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 2},
		{ProductID: "P-B", ProductName: "River Sand", Quantity: 1},
	}
}

func newTestOrder(t *testing.T) *models.Order {
	t.Helper()
	o, err := NewInquiry(client, inquiryItems(), t0)
	require.NoError(t, err)
	return o
}

func pricedOrder(t *testing.T) *models.Order {
	t.Helper()
	o := newTestOrder(t)
	require.NoError(t, SetPricing(o, map[string]float64{"P-A": 10, "P-B": 5}, "Admin", t0.Add(time.Hour)))
	return o
}

func confirmedOrder(t *testing.T) *models.Order {
	t.Helper()
	o := pricedOrder(t)
	require.NoError(t, AcceptQuote(o, client.Name, t0.Add(2*time.Hour)))
	return o
}

func TestNewInquiry(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, models.StatusNewInquiry, o.Status)
	assert.Equal(t, models.PaymentPending, o.PaymentStatus)
	assert.False(t, o.IsLocked)
	assert.Len(t, o.Items, 2)
	assert.Nil(t, o.TotalAmount)

	require.Len(t, o.AuditLog, 1)
	assert.Equal(t, "Order Created", o.AuditLog[0].Action)
	assert.Equal(t, client.Name, o.AuditLog[0].User)
}

func TestNewInquiryRejectsEmptyItems(t *testing.T) {
	_, err := NewInquiry(client, nil, t0)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// Zero-quantity rows do not count.
	_, err = NewInquiry(client, []models.OrderItem{{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 0}}, t0)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSetPricing(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, SetPricing(o, map[string]float64{"P-A": 10, "P-B": 5}, "Admin", t0.Add(time.Hour)))

	assert.Equal(t, models.StatusWaitingApproval, o.Status)
	require.NotNil(t, o.TotalAmount)
	assert.Equal(t, 25.0, *o.TotalAmount) // 2*10 + 1*5

	require.NotNil(t, o.Items[0].Subtotal)
	assert.Equal(t, 20.0, *o.Items[0].Subtotal)

	last := o.AuditLog[len(o.AuditLog)-1]
	assert.Equal(t, "Pricing Set", last.Action)
	assert.Contains(t, last.Details, "25.00")
}

func TestSetPricingDefaultsMissingPricesToZero(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, SetPricing(o, map[string]float64{"P-A": 10}, "Admin", t0.Add(time.Hour)))

	require.NotNil(t, o.Items[1].UnitPrice)
	assert.Equal(t, 0.0, *o.Items[1].UnitPrice)
	assert.Equal(t, 20.0, *o.TotalAmount)
}

func TestSetPricingRejectedAfterApprovalStage(t *testing.T) {
	o := confirmedOrder(t)
	err := SetPricing(o, map[string]float64{"P-A": 10}, "Admin", t0.Add(3*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, models.StatusConfirmed, o.Status)
}

func TestAcceptQuote(t *testing.T) {
	o := pricedOrder(t)
	require.NoError(t, AcceptQuote(o, client.Name, t0.Add(2*time.Hour)))

	assert.Equal(t, models.StatusConfirmed, o.Status)
	assert.True(t, o.IsLocked)
	assert.Equal(t, "Quote Accepted", o.AuditLog[len(o.AuditLog)-1].Action)
}

func TestAcceptQuoteRequiresWaitingApproval(t *testing.T) {
	o := newTestOrder(t)
	err := AcceptQuote(o, client.Name, t0)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, models.StatusNewInquiry, o.Status)
	assert.False(t, o.IsLocked)
}

func TestModifyItemsClientStripsPricing(t *testing.T) {
	o := pricedOrder(t)
	err := ModifyItemsClient(o, []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 3},
	}, client.Name, t0.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingPricing, o.Status)
	assert.Nil(t, o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Nil(t, o.Items[0].UnitPrice)
	assert.Nil(t, o.Items[0].Subtotal)
}

func TestModifyItemsClientRejectedWhenLocked(t *testing.T) {
	o := confirmedOrder(t)
	err := ModifyItemsClient(o, inquiryItems(), client.Name, t0.Add(3*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestModifyItemsRejectsEmptyResult(t *testing.T) {
	o := newTestOrder(t)
	err := ModifyItemsClient(o, []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 0},
	}, client.Name, t0.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Len(t, o.Items, 2)
}

func TestModifyItemsAdminKeepsPricing(t *testing.T) {
	price := 12.5
	o := pricedOrder(t)
	err := ModifyItemsAdmin(o, []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 4, UnitPrice: &price},
	}, "Admin", t0.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingApproval, o.Status)
	require.NotNil(t, o.TotalAmount)
	assert.Equal(t, 50.0, *o.TotalAmount)
}

func TestModifyItemsAdminRequiresPrices(t *testing.T) {
	o := newTestOrder(t)
	err := ModifyItemsAdmin(o, []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 4},
	}, "Admin", t0.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSetPaymentTermsCreditRequiresDueDate(t *testing.T) {
	o := confirmedOrder(t)
	err := SetPaymentTerms(o, models.PaymentCredit, nil, "Admin", t0.Add(3*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	due := t0.AddDate(0, 0, 15)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCredit, &due, "Admin", t0.Add(3*time.Hour)))
	assert.Equal(t, models.PaymentCredit, o.PaymentType)
	require.NotNil(t, o.PaymentDueDate)
	assert.Equal(t, models.StatusConfirmed, o.Status) // terms never change status
}

func TestDispatchRequiresTerms(t *testing.T) {
	o := confirmedOrder(t)
	err := Dispatch(o, "Admin", t0.Add(3*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, Dispatch(o, "Admin", t0.Add(4*time.Hour)))
	assert.Equal(t, models.StatusDispatched, o.Status)
	require.NotNil(t, o.DispatchDate)
}

func TestMarkPaidAloneDoesNotClose(t *testing.T) {
	o := confirmedOrder(t)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))

	require.NoError(t, MarkPaid(o, "Admin", t0.Add(4*time.Hour)))
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, o.Status)
}

func TestMarkPaidTwiceRejected(t *testing.T) {
	o := confirmedOrder(t)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, MarkPaid(o, "Admin", t0.Add(4*time.Hour)))

	err := MarkPaid(o, "Admin", t0.Add(5*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestConfirmReceiptRequiresRating(t *testing.T) {
	o := confirmedOrder(t)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, Dispatch(o, "Admin", t0.Add(4*time.Hour)))

	before := o.Status
	for _, rating := range []int{0, 6, -1} {
		err := ConfirmReceipt(o, rating, "", client.Name, t0.Add(5*time.Hour))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, before, o.Status)
		assert.Nil(t, o.GoodsReceivedDate)
	}
}

func TestConfirmReceiptRequiresDispatch(t *testing.T) {
	o := confirmedOrder(t)
	err := ConfirmReceipt(o, 5, "", client.Name, t0.Add(3*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestReceiptThenPaymentCloses(t *testing.T) {
	o := confirmedOrder(t)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCredit, ptrTime(t0.AddDate(0, 0, 30)), "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, Dispatch(o, "Admin", t0.Add(4*time.Hour)))

	// Goods arrive first; order stays open awaiting payment.
	require.NoError(t, ConfirmReceipt(o, 4, "good quality", client.Name, t0.Add(5*time.Hour)))
	assert.Equal(t, models.StatusDispatched, o.Status)
	require.NotNil(t, o.GoodsReceivedDate)

	// Payment lands; closure triggers with a system audit entry.
	require.NoError(t, MarkPaid(o, "Admin", t0.Add(6*time.Hour)))
	assert.Equal(t, models.StatusClosed, o.Status)

	last := o.AuditLog[len(o.AuditLog)-1]
	assert.Equal(t, "Order Closed", last.Action)
	assert.Equal(t, SystemUser, last.User)
}

func TestClosedImpliesPaidAndReceived(t *testing.T) {
	o := confirmedOrder(t)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, Dispatch(o, "Admin", t0.Add(4*time.Hour)))
	require.NoError(t, MarkPaid(o, "Admin", t0.Add(5*time.Hour)))
	require.NoError(t, ConfirmReceipt(o, 5, "", client.Name, t0.Add(6*time.Hour)))

	require.Equal(t, models.StatusClosed, o.Status)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.NotNil(t, o.GoodsReceivedDate)
}

func TestAuditLogOnlyGrows(t *testing.T) {
	o := newTestOrder(t)
	n := len(o.AuditLog)

	// A rejected operation leaves the log untouched: the unpriced order
	// cannot be accepted yet.
	require.Error(t, AcceptQuote(o, client.Name, t0.Add(time.Hour)))
	assert.Len(t, o.AuditLog, n)

	require.NoError(t, SetPricing(o, map[string]float64{"P-A": 10, "P-B": 5}, "Admin", t0.Add(time.Hour)))
	require.Greater(t, len(o.AuditLog), n)
	n = len(o.AuditLog)

	require.NoError(t, AcceptQuote(o, client.Name, t0.Add(2*time.Hour)))
	assert.Len(t, o.AuditLog, n+1)
}

func TestSnoozeReminder(t *testing.T) {
	o := confirmedOrder(t)
	due := t0.AddDate(0, 0, 10)
	require.NoError(t, SetPaymentTerms(o, models.PaymentCredit, &due, "Admin", t0.Add(3*time.Hour)))

	// First snooze starts from the due date.
	require.NoError(t, SnoozeReminder(o, 3, "Admin", t0.Add(4*time.Hour)))
	require.NotNil(t, o.PaymentReminderDate)
	assert.Equal(t, due.AddDate(0, 0, 3), *o.PaymentReminderDate)

	// Second snooze stacks on the reminder.
	require.NoError(t, SnoozeReminder(o, 2, "Admin", t0.Add(5*time.Hour)))
	assert.Equal(t, due.AddDate(0, 0, 5), *o.PaymentReminderDate)
}

func TestSnoozeReminderWithoutDueDate(t *testing.T) {
	o := newTestOrder(t)
	err := SnoozeReminder(o, 3, "Admin", t0)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestStaleOrders(t *testing.T) {
	now := t0.AddDate(0, 0, 45)
	threshold := 30 * 24 * time.Hour

	fresh := *newTestOrder(t)
	fresh.ID = "ORD-fresh"
	fresh.CreatedAt = now.AddDate(0, 0, -5)

	staleInquiry := *newTestOrder(t)
	staleInquiry.ID = "ORD-stale-inquiry"
	staleInquiry.CreatedAt = now.AddDate(0, 0, -40)

	stalePending := *newTestOrder(t)
	stalePending.ID = "ORD-stale-pending"
	stalePending.Status = models.StatusPendingPricing
	stalePending.CreatedAt = now.AddDate(0, 0, -31)

	oldButActive := *newTestOrder(t)
	oldButActive.ID = "ORD-active"
	oldButActive.Status = models.StatusConfirmed
	oldButActive.CreatedAt = now.AddDate(0, 0, -60)

	stale := StaleOrders([]models.Order{fresh, staleInquiry, stalePending, oldButActive}, now, threshold)
	require.Len(t, stale, 2)
	assert.Equal(t, staleInquiry.ID, stale[0].ID)
	assert.Equal(t, stalePending.ID, stale[1].ID)
}

// The happy-path end-to-end walk: price, accept, cash terms, dispatch,
// pay before receipt, then close on receipt.
func TestFullOrderWalkthrough(t *testing.T) {
	o, err := NewInquiry(client, []models.OrderItem{
		{ProductID: "P-A", ProductName: "Cement 50kg", Quantity: 2},
	}, t0)
	require.NoError(t, err)

	require.NoError(t, SetPricing(o, map[string]float64{"P-A": 10}, "Admin", t0.Add(1*time.Hour)))
	assert.Equal(t, models.StatusWaitingApproval, o.Status)
	assert.Equal(t, 20.0, *o.TotalAmount)

	require.NoError(t, AcceptQuote(o, client.Name, t0.Add(2*time.Hour)))
	assert.Equal(t, models.StatusConfirmed, o.Status)
	assert.True(t, o.IsLocked)

	require.NoError(t, SetPaymentTerms(o, models.PaymentCash, nil, "Admin", t0.Add(3*time.Hour)))
	require.NoError(t, Dispatch(o, "Admin", t0.Add(4*time.Hour)))
	assert.Equal(t, models.StatusDispatched, o.Status)

	require.NoError(t, MarkPaid(o, "Admin", t0.Add(5*time.Hour)))
	assert.Equal(t, models.StatusDispatched, o.Status) // goods not yet received

	require.NoError(t, ConfirmReceipt(o, 5, "excellent", client.Name, t0.Add(6*time.Hour)))
	assert.Equal(t, models.StatusClosed, o.Status)
	assert.Equal(t, 5, o.Rating)
}

func ptrTime(t time.Time) *time.Time { return &t }
