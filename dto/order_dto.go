package dto

type OrderItemDTO struct {
	ProductID   string   `json:"productId" binding:"required"`
	ProductName string   `json:"productName" binding:"required"`
	// Zero is a valid quantity: it marks the item for removal.
	Quantity  int      `json:"quantity" binding:"min=0"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

type SubmitInquiryDTO struct {
	Items []OrderItemDTO `json:"items" binding:"required,min=1,dive"`
}

type SetPricingDTO struct {
	// Unit price per product id; unpriced products default to 0.
	Prices map[string]float64 `json:"prices" binding:"required"`
}

type ModifyItemsDTO struct {
	Items []OrderItemDTO `json:"items" binding:"required,min=1,dive"`
}

type PaymentTermsDTO struct {
	PaymentType string `json:"paymentType" binding:"required,oneof=cash credit"`
	DueDate     string `json:"dueDate"` // YYYY-MM-DD, required for credit
}

type ConfirmReceiptDTO struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

type SnoozeReminderDTO struct {
	Days int `json:"days" binding:"required,min=1"`
}

type SetReminderDTO struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type CleanupStaleDTO struct {
	ThresholdDays int  `json:"thresholdDays"`
	Confirm       bool `json:"confirm"`
}
