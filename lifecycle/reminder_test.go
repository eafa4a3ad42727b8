package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/muthuvelan/orderdeskbackend/models"
)

func TestClassifyReminder(t *testing.T) {
	today := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		due      *time.Time
		reminder *time.Time
		want     ReminderBucket
	}{
		{"no due date", nil, nil, ReminderNoDate},
		{"due yesterday", ptrTime(today.AddDate(0, 0, -1)), nil, ReminderOverdue},
		{"due today earlier hour", ptrTime(time.Date(2026, 8, 15, 1, 0, 0, 0, time.UTC)), nil, ReminderToday},
		{"due tomorrow", ptrTime(today.AddDate(0, 0, 1)), nil, ReminderUpcoming},
		{"snoozed past overdue due", ptrTime(today.AddDate(0, 0, -10)), ptrTime(today.AddDate(0, 0, 5)), ReminderUpcoming},
		{"reminder lapsed", ptrTime(today.AddDate(0, 0, 10)), ptrTime(today.AddDate(0, 0, -2)), ReminderOverdue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &models.Order{PaymentDueDate: tc.due, PaymentReminderDate: tc.reminder}
			assert.Equal(t, tc.want, ClassifyReminder(today, o))
		})
	}
}

func TestNeedsReminder(t *testing.T) {
	base := models.Order{
		PaymentType:   models.PaymentCredit,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusDispatched,
	}
	assert.True(t, NeedsReminder(&base))

	cash := base
	cash.PaymentType = models.PaymentCash
	assert.False(t, NeedsReminder(&cash))

	paid := base
	paid.PaymentStatus = models.PaymentPaid
	assert.False(t, NeedsReminder(&paid))

	closed := base
	closed.Status = models.StatusClosed
	assert.False(t, NeedsReminder(&closed))
}
