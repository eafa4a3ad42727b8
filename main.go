package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/muthuvelan/orderdeskbackend/controllers"
	"github.com/muthuvelan/orderdeskbackend/database"
	"github.com/muthuvelan/orderdeskbackend/middleware"
	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/store"
	"github.com/muthuvelan/orderdeskbackend/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	var st store.Store
	switch utils.EnvDefault("STORE_DRIVER", "file") {
	case "mongo":
		st = store.NewMongoStore(database.OpenDatabase())
	default:
		st = store.NewFileStore(utils.EnvDefault("DB_FILE_PATH", "db.json"))
	}

	app := controllers.NewApp(st)

	//seeding admin user
	ctx := context.Background()
	if err := utils.SeedAdminUser(ctx, app.Accounts); err != nil {
		log.Fatal(err)
	}

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.POST("/auth/login", app.Login())
	r.POST("/auth/refresh", app.Refresh())
	r.POST("/auth/request-otp", app.RequestOTP())
	r.POST("/auth/verify-otp", app.VerifyOTP())

	r.GET("/products", app.GetProducts())

	client := r.Group("/client")
	client.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(models.RoleClient)))
	{
		client.POST("/orders", app.SubmitInquiry())
		client.GET("/orders", app.MyOrders())
		client.PUT("/orders/:id/items", app.ClientModifyItems())
		client.POST("/orders/:id/accept", app.AcceptQuote())
		client.POST("/orders/:id/confirm-receipt", app.ConfirmReceipt())
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(models.RoleAdmin)))
	{
		admin.GET("/orders", app.AdminListOrders())
		admin.GET("/orders/:id", app.GetOrder())
		admin.POST("/orders/:id/pricing", app.SetPricing())
		admin.PUT("/orders/:id/items", app.AdminModifyItems())
		admin.POST("/orders/:id/payment-terms", app.SetPaymentTerms())
		admin.POST("/orders/:id/dispatch", app.DispatchOrder())
		admin.POST("/orders/:id/mark-paid", app.MarkPaid())
		admin.POST("/orders/:id/snooze-reminder", app.SnoozeReminder())
		admin.PUT("/orders/:id/reminder-date", app.SetReminderDate())
		admin.GET("/payment-reminders", app.PaymentReminders())
		admin.POST("/cleanup-stale", app.CleanupStale())

		admin.POST("/products", app.AddProduct())
		admin.PATCH("/products/:id", app.UpdateProduct())

		admin.POST("/data/create-table", app.CreateTable())
		admin.POST("/data/insert", app.InsertData())
		admin.GET("/data/read", app.ReadData())
		admin.PUT("/data/update", app.UpdateData())
		admin.DELETE("/data/delete", app.DeleteData())
	}

	// Start server on port 8080 (default)
	r.Run()
}
