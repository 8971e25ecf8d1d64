// cmd/sandbox/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/sandbox"
	"github.com/acippicacipa/orchid-erp-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srvLog := logger.Component("sandbox")

	sb := sandbox.New()
	if len(os.Args) > 1 && os.Args[1] == "--seed" {
		seedDemoData(sb)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      sb.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		srvLog.Info().Str("port", cfg.Server.Port).Msg("Starting sandbox backend")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvLog.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	srvLog.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		srvLog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	srvLog.Info().Msg("Server exiting")
}

// seedDemoData loads a small data set so the CLI has something to browse on a
// fresh start.
func seedDemoData(sb *sandbox.Sandbox) {
	gudang := sb.AddLocation("WH-01", "Gudang Utama")
	toko := sb.AddLocation("ST-01", "Toko Cabang")

	kemeja := sb.AddProduct(domain.Product{
		SKU:          "SHIRT-001",
		Name:         "Kemeja Batik",
		Brand:        "Orchid",
		CostPrice:    decimal.NewFromInt(90000),
		SellingPrice: decimal.NewFromInt(150000),
		ReorderPoint: decimal.NewFromInt(20),
	})
	tas := sb.AddProduct(domain.Product{
		SKU:          "BAG-001",
		Name:         "Tas Kulit",
		Brand:        "Orchid",
		CostPrice:    decimal.NewFromInt(600000),
		SellingPrice: decimal.NewFromInt(1000000),
		ReorderPoint: decimal.NewFromInt(5),
	})
	sb.SetStock(kemeja.ID, gudang.ID, decimal.NewFromInt(120))
	sb.SetStock(kemeja.ID, toko.ID, decimal.NewFromInt(15))
	sb.SetStock(tas.ID, gudang.ID, decimal.NewFromInt(30))

	sb.AddCustomer("Toko Melati")
	sb.AddCustomer("CV Anggrek Jaya")
	sb.AddSupplier("PT Tekstil Nusantara")
	sb.AddSupplier("CV Kulit Garut")

	logger.Log.Info().Msg("Seeded demo data")
}
