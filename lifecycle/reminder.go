package lifecycle

import (
	"time"

	"github.com/muthuvelan/orderdeskbackend/models"
)

type ReminderBucket string

const (
	ReminderOverdue  ReminderBucket = "overdue"
	ReminderToday    ReminderBucket = "today"
	ReminderUpcoming ReminderBucket = "upcoming"
	ReminderNoDate   ReminderBucket = "no-date"
)

// ClassifyReminder buckets an order's payment reminder relative to today.
// The reminder date falls back to the due date; without a due date there is
// nothing to remind about. Comparison is by calendar day.
func ClassifyReminder(today time.Time, o *models.Order) ReminderBucket {
	if o.PaymentDueDate == nil {
		return ReminderNoDate
	}

	reminder := o.PaymentDueDate
	if o.PaymentReminderDate != nil {
		reminder = o.PaymentReminderDate
	}

	day := truncateDay(today)
	rday := truncateDay(*reminder)

	switch {
	case rday.Before(day):
		return ReminderOverdue
	case rday.Equal(day):
		return ReminderToday
	default:
		return ReminderUpcoming
	}
}

// NeedsReminder reports whether an order belongs in the payment tracking
// view at all: credit terms, still pending, not closed.
func NeedsReminder(o *models.Order) bool {
	return o.PaymentType == models.PaymentCredit &&
		o.PaymentStatus == models.PaymentPending &&
		o.Status != models.StatusClosed
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
