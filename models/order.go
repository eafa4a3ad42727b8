package models

import "time"

type OrderStatus string

const (
	StatusNewInquiry      OrderStatus = "new_inquiry"
	StatusPendingPricing  OrderStatus = "pending_pricing"
	StatusWaitingApproval OrderStatus = "waiting_approval"
	StatusConfirmed       OrderStatus = "confirmed"
	StatusDispatched      OrderStatus = "dispatched"
	StatusClosed          OrderStatus = "closed"
)

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCredit PaymentType = "credit"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type OrderItem struct {
	ProductID   string   `bson:"productId" json:"productId"`
	ProductName string   `bson:"productName" json:"productName"`
	Quantity    int      `bson:"quantity" json:"quantity"`
	UnitPrice   *float64 `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	Subtotal    *float64 `bson:"subtotal,omitempty" json:"subtotal,omitempty"`
}

type AuditEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Action    string    `bson:"action" json:"action"`
	User      string    `bson:"user" json:"user"`
	Details   string    `bson:"details,omitempty" json:"details,omitempty"`
}

type Order struct {
	ID           string      `bson:"_id" json:"id"`
	ClientID     string      `bson:"clientId" json:"clientId"`
	ClientName   string      `bson:"clientName" json:"clientName"`
	ClientMobile string      `bson:"clientMobile" json:"clientMobile"`
	Items        []OrderItem `bson:"items" json:"items"`
	Status       OrderStatus `bson:"status" json:"status"`

	TotalAmount *float64 `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`

	PaymentType         PaymentType   `bson:"paymentType,omitempty" json:"paymentType,omitempty"`
	PaymentStatus       PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentDueDate      *time.Time    `bson:"paymentDueDate,omitempty" json:"paymentDueDate,omitempty"`
	PaymentReminderDate *time.Time    `bson:"paymentReminderDate,omitempty" json:"paymentReminderDate,omitempty"`

	DispatchDate      *time.Time `bson:"dispatchDate,omitempty" json:"dispatchDate,omitempty"`
	GoodsReceivedDate *time.Time `bson:"goodsReceivedDate,omitempty" json:"goodsReceivedDate,omitempty"`

	Rating   int    `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback string `bson:"feedback,omitempty" json:"feedback,omitempty"`

	AuditLog []AuditEntry `bson:"auditLog" json:"auditLog"`

	IsLocked  bool      `bson:"isLocked" json:"isLocked"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
