// cmd/erpctl/main.go
package main

import (
	"context"
	"os"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository/rest"
	"github.com/acippicacipa/orchid-erp-sub001/internal/service"
	"github.com/acippicacipa/orchid-erp-sub001/internal/session"
	"github.com/acippicacipa/orchid-erp-sub001/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type stateKeyType struct{}

var stateKey stateKeyType

// appState carries the client and repositories between the Before hook and
// command actions.
type appState struct {
	cfg        *config.Config
	api        *client.Client
	accounts   repository.AccountsRepository
	inventory  repository.InventoryRepository
	sales      repository.SalesRepository
	purchasing repository.PurchasingRepository
	imports    repository.DataImportRepository
}

func newBaseURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "base-url",
		Usage:   "Backend API base URL",
		EnvVars: []string{"ERP_API_BASE_URL"},
	}
}

// initAPI builds the client and repositories and stores them on the cli
// context. It does not require a session.
func initAPI(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	apiCfg := cfg.API
	if v := c.String("base-url"); v != "" {
		apiCfg.BaseURL = v
	}

	api := client.New(apiCfg, session.NewFileStore(apiCfg.CredentialsFile))
	st := &appState{
		cfg:        cfg,
		api:        api,
		accounts:   rest.NewAccounts(api),
		inventory:  rest.NewInventory(api),
		sales:      rest.NewSales(api),
		purchasing: rest.NewPurchasing(api),
		imports:    rest.NewDataImport(api),
	}
	c.Context = context.WithValue(c.Context, stateKey, st)
	return nil
}

// requireAuth is initAPI plus a session restore. Commands behind it can rely
// on an Authenticated session.
func requireAuth(c *cli.Context) error {
	if err := initAPI(c); err != nil {
		return err
	}
	st := state(c)
	if _, ok := st.api.Restore(c.Context); !ok {
		return cli.Exit("not logged in, run: erpctl login", 1)
	}
	return nil
}

func state(c *cli.Context) *appState {
	st, _ := c.Context.Value(stateKey).(*appState)
	return st
}

func (st *appState) salesOrders() *service.SalesOrderService {
	return service.NewSalesOrderService(st.sales)
}

func (st *appState) purchaseOrders() *service.PurchaseOrderService {
	return service.NewPurchaseOrderService(st.purchasing)
}

func (st *appState) inventoryService() *service.InventoryService {
	return service.NewInventoryService(st.inventory)
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn().Err(err).Msg("could not load .env file")
	}

	app := &cli.App{
		Name:  "erpctl",
		Usage: "Command-line front end for the Orchid ERP backend",
		Flags: []cli.Flag{
			newBaseURLFlag(),
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			productsCommand(),
			stockCommand(),
			transfersCommand(),
			assemblyCommand(),
			customersCommand(),
			salesOrdersCommand(),
			invoicesCommand(),
			suppliersCommand(),
			purchaseOrdersCommand(),
			billsCommand(),
			importCommand(),
			dashboardCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}
