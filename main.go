package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contracheque-parser/client"
	"contracheque-parser/config"
	"contracheque-parser/handler"
	"contracheque-parser/service"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Tesseract client for scanned payslips
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor(tesseractClient, logger)

	// Initialize service layer
	payslipService := service.NewPayslipService(pdfProcessor, logger)

	// Initialize handler layer
	payslipHandler := handler.NewPayslipHandler(payslipService, logger, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Payslip Parser",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		payslips := api.Group("/payslips")
		{
			payslips.POST("/parse", payslipHandler.ParsePayslip)
		}
	}

	logger.Info("Starting Payslip Parser Service", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
