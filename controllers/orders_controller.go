package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/dto"
	"github.com/muthuvelan/orderdeskbackend/lifecycle"
	"github.com/muthuvelan/orderdeskbackend/models"
)

const defaultStaleThresholdDays = 30

func dtoItems(in []dto.OrderItemDTO) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items
}

func adminActor(c *gin.Context) string {
	if email := c.GetString("email"); email != "" {
		return email
	}
	return "Admin"
}

func clientActor(c *gin.Context) string {
	if name := c.GetString("name"); name != "" {
		return name
	}
	return "Client"
}

// mutateOrder runs one lifecycle operation as a unit: load the snapshot,
// apply, persist. Nothing is written when the operation fails.
func (a *App) mutateOrder(c *gin.Context, id string, op func(o *models.Order) error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := c.Request.Context()
	o, err := a.Orders.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := op(o); err != nil {
		respondError(c, err)
		return
	}
	if err := a.Orders.Update(ctx, o); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /client/orders
func (a *App) SubmitInquiry() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SubmitInquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		client := lifecycle.ClientInfo{
			ID:     c.GetString("userID"),
			Name:   c.GetString("name"),
			Mobile: c.GetString("mobile"),
		}

		a.mu.Lock()
		defer a.mu.Unlock()

		o, err := lifecycle.NewInquiry(client, dtoItems(body.Items), time.Now().UTC())
		if err != nil {
			respondError(c, err)
			return
		}
		if err := a.Orders.Insert(c.Request.Context(), o); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// GET /client/orders
func (a *App) MyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := a.Orders.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		clientID := c.GetString("userID")
		mobile := c.GetString("mobile")

		mine := make([]models.Order, 0)
		for _, o := range all {
			if o.ClientID == clientID || (mobile != "" && o.ClientMobile == mobile) {
				mine = append(mine, o)
			}
		}
		sortNewestFirst(mine)
		c.JSON(http.StatusOK, gin.H{"items": mine})
	}
}

// GET /admin/orders
func (a *App) AdminListOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := a.Orders.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filtered := make([]models.Order, 0, len(all))
			for _, o := range all {
				if string(o.Status) == status {
					filtered = append(filtered, o)
				}
			}
			all = filtered
		}
		sortNewestFirst(all)
		c.JSON(http.StatusOK, gin.H{"items": all, "total": len(all)})
	}
}

// GET /admin/orders/:id
func (a *App) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := a.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// POST /admin/orders/:id/pricing
func (a *App) SetPricing() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SetPricingDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.SetPricing(o, body.Prices, adminActor(c), now)
		})
	}
}

// PUT /admin/orders/:id/items
func (a *App) AdminModifyItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ModifyItemsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.ModifyItemsAdmin(o, dtoItems(body.Items), adminActor(c), now)
		})
	}
}

// PUT /client/orders/:id/items
func (a *App) ClientModifyItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ModifyItemsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			if err := a.requireOwner(c, o); err != nil {
				return err
			}
			return lifecycle.ModifyItemsClient(o, dtoItems(body.Items), clientActor(c), now)
		})
	}
}

// POST /client/orders/:id/accept
func (a *App) AcceptQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			if err := a.requireOwner(c, o); err != nil {
				return err
			}
			return lifecycle.AcceptQuote(o, clientActor(c), now)
		})
	}
}

// POST /admin/orders/:id/payment-terms
func (a *App) SetPaymentTerms() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.PaymentTermsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var due *time.Time
		if body.DueDate != "" {
			t, err := time.Parse("2006-01-02", body.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected YYYY-MM-DD"})
				return
			}
			due = &t
		}

		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.SetPaymentTerms(o, models.PaymentType(body.PaymentType), due, adminActor(c), now)
		})
	}
}

// POST /admin/orders/:id/dispatch
func (a *App) DispatchOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.Dispatch(o, adminActor(c), now)
		})
	}
}

// POST /admin/orders/:id/mark-paid
func (a *App) MarkPaid() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.MarkPaid(o, adminActor(c), now)
		})
	}
}

// POST /client/orders/:id/confirm-receipt
func (a *App) ConfirmReceipt() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ConfirmReceiptDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			if err := a.requireOwner(c, o); err != nil {
				return err
			}
			return lifecycle.ConfirmReceipt(o, body.Rating, body.Feedback, clientActor(c), now)
		})
	}
}

// POST /admin/orders/:id/snooze-reminder
func (a *App) SnoozeReminder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SnoozeReminderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.SnoozeReminder(o, body.Days, adminActor(c), now)
		})
	}
}

// PUT /admin/orders/:id/reminder-date
func (a *App) SetReminderDate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SetReminderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		now := time.Now().UTC()
		a.mutateOrder(c, c.Param("id"), func(o *models.Order) error {
			return lifecycle.SetReminderDate(o, date, adminActor(c), now)
		})
	}
}

// GET /admin/payment-reminders
func (a *App) PaymentReminders() gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := a.Orders.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		today := time.Now().UTC()
		buckets := map[lifecycle.ReminderBucket][]models.Order{
			lifecycle.ReminderOverdue:  {},
			lifecycle.ReminderToday:    {},
			lifecycle.ReminderUpcoming: {},
			lifecycle.ReminderNoDate:   {},
		}
		for _, o := range all {
			if !lifecycle.NeedsReminder(&o) {
				continue
			}
			b := lifecycle.ClassifyReminder(today, &o)
			buckets[b] = append(buckets[b], o)
		}

		c.JSON(http.StatusOK, gin.H{
			"overdue":  buckets[lifecycle.ReminderOverdue],
			"today":    buckets[lifecycle.ReminderToday],
			"upcoming": buckets[lifecycle.ReminderUpcoming],
			"noDate":   buckets[lifecycle.ReminderNoDate],
		})
	}
}

// POST /admin/cleanup-stale
//
// Deletion is irreversible, so the sweep only reports matches until the
// caller sends confirm=true.
func (a *App) CleanupStale() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CleanupStaleDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		days := body.ThresholdDays
		if days <= 0 {
			days = defaultStaleThresholdDays
		}

		a.mu.Lock()
		defer a.mu.Unlock()

		ctx := c.Request.Context()
		all, err := a.Orders.List(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		stale := lifecycle.StaleOrders(all, time.Now().UTC(), time.Duration(days)*24*time.Hour)
		if !body.Confirm {
			c.JSON(http.StatusOK, gin.H{"matched": len(stale), "deleted": 0, "dryRun": true})
			return
		}

		deleted := 0
		for _, o := range stale {
			if err := a.Orders.Delete(ctx, o.ID); err != nil {
				respondError(c, err)
				return
			}
			deleted++
		}
		c.JSON(http.StatusOK, gin.H{"matched": len(stale), "deleted": deleted})
	}
}

func (a *App) requireOwner(c *gin.Context, o *models.Order) error {
	clientID := c.GetString("userID")
	mobile := c.GetString("mobile")
	if o.ClientID == clientID || (mobile != "" && o.ClientMobile == mobile) {
		return nil
	}
	return apperr.ErrOrderNotFound
}

func sortNewestFirst(list []models.Order) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
