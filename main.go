package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"nfm-facility/app/aggregation"
	"nfm-facility/app/config"
	"nfm-facility/app/database"
	"nfm-facility/app/events"
	"nfm-facility/app/metrics"
	"nfm-facility/app/routes/attendance"
	"nfm-facility/app/routes/auth"
	"nfm-facility/app/routes/dailyreports"
	"nfm-facility/app/routes/dashboard"
	"nfm-facility/app/routes/fleet"
	"nfm-facility/app/routes/inspections"
	"nfm-facility/app/routes/invoices"
	"nfm-facility/app/routes/kpi"
	"nfm-facility/app/routes/monthlyreport"
	"nfm-facility/app/routes/payroll"
	"nfm-facility/app/routes/shared"
	"nfm-facility/app/routes/sites"
	"nfm-facility/app/routes/workers"
	"nfm-facility/app/routes/workorders"
	"nfm-facility/app/services"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// Check if this is an API request
	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	// Handle different error codes for web requests
	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - NFM Facility",
			"CurrentPage": "",
		})
	case 403:
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - NFM Facility",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case 401:
		return c.Status(401).Render("error", fiber.Map{
			"Title":        "Unauthorized - NFM Facility",
			"CurrentPage":  "",
			"ErrorCode":    "401",
			"ErrorTitle":   "Unauthorized",
			"ErrorMessage": "Please log in to access this resource.",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - NFM Facility",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - NFM Facility",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// Initialize database
	config.InitDB()
	cfg := config.AppConfig
	defer config.GetDB().Close()

	// Business dates (attendance days, month ends, SLA targets) follow the site timezone.
	time.Local = cfg.Location
	shared.Location = cfg.Location
	log.Printf("Application time zone set to: %s", cfg.Location.String())

	decimal.MarshalJSONWithoutQuotes = true

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	store := database.NewStore(config.GetDB())
	engine := aggregation.New(aggregation.DefaultPolicy())

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.InvoiceTopic)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background scheduler
	scheduler := &services.Scheduler{Store: store, Engine: engine, DataDir: cfg.DataDir, Now: shared.Now}
	scheduler.StartScheduler(ctx)

	// Initialize template engine
	views := html.New("./app/templates", ".html")
	views.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	views.Reload(os.Getenv("APP_ENV") != "production")
	views.Debug(false)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             views,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware)

	// Static files
	app.Static("/static", "./static")
	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return shared.StoreFailure(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app, store)
	dashboard.SetupDashboardRoutes(app, store)
	workers.SetupWorkersRoutes(app, store)
	attendance.SetupAttendanceRoutes(app, store, engine, cfg.DataDir)
	payroll.SetupPayrollRoutes(app, store, engine, cfg.DataDir)
	kpi.SetupKpiRoutes(app, store, engine, cfg.DataDir)
	workorders.SetupWorkOrderRoutes(app, store)
	fleet.SetupFleetRoutes(app, store)
	invoices.SetupInvoiceRoutes(app, store, engine, publisher, cfg.Billing.DefaultOverheadPct)
	sites.SetupSitesRoutes(app, store)
	dailyreports.SetupDailyReportRoutes(app, store)
	inspections.SetupInspectionRoutes(app, store)
	monthlyreport.SetupMonthlyReportRoutes(app, store, cfg.DataDir)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
