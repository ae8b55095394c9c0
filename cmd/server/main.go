package main

import (
	"os"
	"os/signal"
	"syscall"

	"company-finance-backend/internal/config"
	"company-finance-backend/internal/database"
	"company-finance-backend/internal/handler"
	"company-finance-backend/internal/middleware"
	"company-finance-backend/internal/policy"
	"company-finance-backend/internal/repository"
	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/logger"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Build the logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: os.Stdout,
	})
	log.Info().Msg("Configuration loaded successfully")

	// 3. Initialize JWT token manager
	tokens := utils.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 4. Initialize database connection and schema
	db := database.Connect(cfg, log)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	// 5. Initialize repositories
	auditRepo := repository.NewAuditRepo(db)
	userRepo := repository.NewUserRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	budgetRepo := repository.NewBudgetRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	payrollRepo := repository.NewPayrollRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// 6. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo, tokens)
	userService := service.NewUserService(userRepo, auditRepo)
	departmentService := service.NewDepartmentService(departmentRepo, userRepo, auditRepo)
	budgetService := service.NewBudgetService(budgetRepo, userRepo, auditRepo)
	transactionService := service.NewTransactionService(transactionRepo, budgetRepo, userRepo, auditRepo)
	payrollService := service.NewPayrollService(payrollRepo, userRepo, auditRepo)
	reportService := service.NewReportService(reportRepo, budgetRepo)
	auditService := service.NewAuditService(auditRepo, userRepo)

	// 7. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	reportHandler := handler.NewReportHandler(reportService)
	auditHandler := handler.NewAuditHandler(auditService)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "company-finance-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(tokens))

	// Transaction routes
	transactions := authed.Group("/transactions")
	{
		transactions.GET("", middleware.RequireCapability(policy.ViewTransactions), transactionHandler.List)
		transactions.POST("", middleware.RequireCapability(policy.ManageTransactions), transactionHandler.Create)
		transactions.PUT("/:id", middleware.RequireCapability(policy.EditTransactions), transactionHandler.Update)
		transactions.DELETE("/:id", middleware.RequireCapability(policy.ManageTransactions), transactionHandler.Delete)
		transactions.POST("/:id/approve", middleware.RequireCapability(policy.ApproveTransactions), transactionHandler.Approve)
		transactions.POST("/:id/reject", middleware.RequireCapability(policy.ApproveTransactions), transactionHandler.Reject)
	}

	// Budget routes
	budgets := authed.Group("/budgets")
	{
		budgets.GET("", middleware.RequireCapability(policy.ViewBudgets), budgetHandler.List)
		budgets.POST("", middleware.RequireCapability(policy.EditBudgets), budgetHandler.Create)
		budgets.PUT("/:category", middleware.RequireCapability(policy.EditBudgets), budgetHandler.Update)
		budgets.DELETE("/:category", middleware.RequireCapability(policy.EditBudgets), budgetHandler.Delete)
	}

	// Payroll routes
	payroll := authed.Group("/payroll")
	{
		payroll.GET("", middleware.RequireCapability(policy.ViewPayroll), payrollHandler.List)
		payroll.POST("", middleware.RequireCapability(policy.ManagePayroll), payrollHandler.Create)
		payroll.POST("/:id/pay", middleware.RequireCapability(policy.ApprovePayroll), payrollHandler.MarkPaid)
		payroll.DELETE("/:id", middleware.RequireCapability(policy.ManagePayroll), payrollHandler.Delete)
	}

	// User management routes
	users := authed.Group("/users")
	users.Use(middleware.RequireCapability(policy.ManageUsers))
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// Department routes
	departments := authed.Group("/departments")
	{
		departments.GET("", departmentHandler.List)
		departments.GET("/:id", departmentHandler.Get)
		departments.POST("", middleware.RequireCapability(policy.ManageUsers), departmentHandler.Create)
		departments.PUT("/:id", middleware.RequireCapability(policy.ManageUsers), departmentHandler.Update)
	}

	// Audit trail review
	authed.GET("/audit-logs", middleware.RequireCapability(policy.ManageUsers), auditHandler.List)

	// Reporting routes
	reports := authed.Group("/reports")
	reports.Use(middleware.RequireCapability(policy.ViewTransactions))
	{
		reports.GET("/overview", reportHandler.Overview)
		reports.GET("/monthly", reportHandler.Monthly)
		reports.GET("/yearly", reportHandler.Yearly)
		reports.GET("/expense-breakdown", reportHandler.ExpenseBreakdown)
		reports.GET("/top-spending", reportHandler.TopSpending)
		reports.GET("/budget-utilization", middleware.RequireCapability(policy.ViewBudgets), reportHandler.BudgetUtilization)
		reports.GET("/trend", reportHandler.Trend)
		reports.GET("/recent", reportHandler.Recent)
	}

	// 10. Start the server
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")
}
