// Package sandbox is an in-memory implementation of the ERP backend contract.
// It backs integration tests and offline demos: token auth, DRF-style
// pagination envelopes, and action endpoints that perform the real state
// transitions and stock effects.
package sandbox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type userRecord struct {
	password string
	user     domain.User
}

type stockKey struct {
	product  int64
	location int64
}

// Sandbox holds the whole backend state behind one mutex. Request volume is
// test-sized, so a single lock keeps the bookkeeping honest.
type Sandbox struct {
	mu     sync.Mutex
	seq    map[string]int64
	users  map[string]*userRecord
	tokens map[string]string // token -> username

	products map[int64]*domain.Product
	// defaultLocation is where sales and consignment stock effects land,
	// mirroring the warehouse the front office ships from. First seeded
	// location wins.
	defaultLocation int64
	locations       map[int64]*domain.Location
	stock           map[stockKey]*domain.StockRecord
	movements       []*domain.StockMovement
	transfers       map[int64]*domain.StockTransfer
	boms            map[int64]*domain.BOM
	asms            map[int64]*domain.AssemblyOrder

	customers    map[int64]*domain.Customer
	salesOrders  map[int64]*domain.SalesOrder
	invoices     map[int64]*domain.Invoice
	downPayments map[int64]*domain.DownPayment
	salesReturns map[int64]*domain.SalesReturn

	suppliers      map[int64]*domain.Supplier
	purchaseOrders map[int64]*domain.PurchaseOrder
	bills          map[int64]*domain.Bill
	payments       map[int64]*domain.SupplierPayment
	consignments   map[int64]*domain.ConsignmentReceipt

	importJobs map[int64]*domain.ImportJob
	importLogs map[int64][]domain.ImportLog
}

// New creates an empty sandbox with a default admin account.
func New() *Sandbox {
	s := &Sandbox{
		seq:            make(map[string]int64),
		users:          make(map[string]*userRecord),
		tokens:         make(map[string]string),
		products:       make(map[int64]*domain.Product),
		locations:      make(map[int64]*domain.Location),
		stock:          make(map[stockKey]*domain.StockRecord),
		transfers:      make(map[int64]*domain.StockTransfer),
		boms:           make(map[int64]*domain.BOM),
		asms:           make(map[int64]*domain.AssemblyOrder),
		customers:      make(map[int64]*domain.Customer),
		salesOrders:    make(map[int64]*domain.SalesOrder),
		invoices:       make(map[int64]*domain.Invoice),
		downPayments:   make(map[int64]*domain.DownPayment),
		salesReturns:   make(map[int64]*domain.SalesReturn),
		suppliers:      make(map[int64]*domain.Supplier),
		purchaseOrders: make(map[int64]*domain.PurchaseOrder),
		bills:          make(map[int64]*domain.Bill),
		payments:       make(map[int64]*domain.SupplierPayment),
		consignments:   make(map[int64]*domain.ConsignmentReceipt),
		importJobs:     make(map[int64]*domain.ImportJob),
		importLogs:     make(map[int64][]domain.ImportLog),
	}

	s.AddUser("admin", "admin123", domain.User{
		Username:    "admin",
		FirstName:   "Dewi",
		LastName:    "Utami",
		Role:        "ADMIN",
		RoleDisplay: "Administrator",
		IsActive:    true,
	})

	return s
}

// AddUser registers a login. The user ID is assigned by the sandbox.
func (s *Sandbox) AddUser(username, password string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID("user")
	user.Username = username
	s.users[username] = &userRecord{password: password, user: user}
}

func (s *Sandbox) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

func newToken() string {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	return hex.EncodeToString(raw)
}

// Router builds the gin engine exposing the backend API.
func (s *Sandbox) Router(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(), Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/accounts/login/", s.login)

	authed := router.Group("/", s.requireToken)
	{
		accounts := authed.Group("/accounts")
		{
			accounts.POST("/logout/", s.logout)
			accounts.GET("/profile/", s.profile)
			accounts.GET("/users/", s.listUsers)
		}

		inventory := authed.Group("/inventory")
		{
			inventory.GET("/products/", s.listProducts)
			inventory.POST("/products/", s.createProduct)
			inventory.GET("/products/:id/", s.getProduct)
			inventory.PUT("/products/:id/", s.updateProduct)
			inventory.DELETE("/products/:id/", s.deleteProduct)

			inventory.GET("/locations/", s.listLocations)
			inventory.GET("/stock/", s.listStock)

			inventory.GET("/stock-movements/", s.listMovements)
			inventory.POST("/stock-movements/", s.createMovement)

			inventory.GET("/stock-transfers/", s.listTransfers)
			inventory.POST("/stock-transfers/", s.createTransfer)
			inventory.POST("/stock-transfers/:id/complete/", s.completeTransfer)

			inventory.GET("/boms/", s.listBOMs)
			inventory.POST("/boms/", s.createBOM)
			inventory.GET("/boms/:id/", s.getBOM)

			inventory.GET("/assembly-orders/", s.listAssemblies)
			inventory.POST("/assembly-orders/", s.createAssembly)
			inventory.GET("/assembly-orders/:id/", s.getAssembly)
			inventory.POST("/assembly-orders/:id/:action/", s.transitionAssembly)
		}

		sales := authed.Group("/sales")
		{
			sales.GET("/customers/", s.listCustomers)
			sales.POST("/customers/", s.createCustomer)

			sales.GET("/sales-orders/", s.listSalesOrders)
			sales.POST("/sales-orders/", s.createSalesOrder)
			sales.GET("/sales-orders/:id/", s.getSalesOrder)
			sales.PUT("/sales-orders/:id/", s.updateSalesOrder)
			sales.POST("/sales-orders/:id/confirm/", s.confirmSalesOrder)
			sales.POST("/sales-orders/:id/approve/", s.approveSalesOrder)
			sales.POST("/sales-orders/:id/create_delivery_order/", s.deliverSalesOrder)
			sales.POST("/sales-orders/:id/cancel/", s.cancelSalesOrder)

			sales.GET("/invoices/", s.listInvoices)
			sales.GET("/down-payments/", s.listDownPayments)
			sales.POST("/down-payments/", s.createDownPayment)
			sales.GET("/sales-returns/", s.listSalesReturns)
			sales.POST("/sales-returns/", s.createSalesReturn)
		}

		purchasing := authed.Group("/purchasing")
		{
			purchasing.GET("/suppliers/", s.listSuppliers)
			purchasing.POST("/suppliers/", s.createSupplier)

			purchasing.GET("/purchase-orders/", s.listPurchaseOrders)
			purchasing.POST("/purchase-orders/", s.createPurchaseOrder)
			purchasing.GET("/purchase-orders/:id/", s.getPurchaseOrder)
			purchasing.POST("/purchase-orders/:id/submit/", s.submitPurchaseOrder)
			purchasing.POST("/purchase-orders/:id/approve/", s.approvePurchaseOrder)
			purchasing.POST("/purchase-orders/:id/receive/", s.receivePurchaseOrder)

			purchasing.GET("/bills/", s.listBills)
			purchasing.GET("/supplier-payments/", s.listSupplierPayments)
			purchasing.POST("/supplier-payments/", s.createSupplierPayment)
			purchasing.GET("/consignment-receipts/", s.listConsignmentReceipts)
			purchasing.POST("/consignment-receipts/", s.createConsignmentReceipt)
		}

		dataImport := authed.Group("/data-import")
		{
			dataImport.POST("/upload/", s.uploadImport)
			dataImport.GET("/templates/", s.listImportTemplates)
			dataImport.GET("/history/", s.listImportHistory)
			dataImport.POST("/validate/:id/", s.validateImport)
			dataImport.GET("/logs/:id/", s.listImportLogs)
		}
	}

	return router
}

// requireToken validates the Authorization header and stores the caller's
// user on the gin context.
func (s *Sandbox) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Token ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	s.mu.Lock()
	username, ok := s.tokens[strings.TrimPrefix(header, "Token ")]
	var user domain.User
	if ok {
		user = s.users[username].user
	}
	s.mu.Unlock()

	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}

	c.Set("user", user)
	c.Next()
}

func currentUser(c *gin.Context) domain.User {
	user, _ := c.MustGet("user").(domain.User)
	return user
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

// page slices items into the DRF pagination envelope.
func page[T any](c *gin.Context, items []T) gin.H {
	pageNum := parsePositiveIntWithDefault(c.Query("page"), 1)
	pageSize := parsePositiveIntWithDefault(c.Query("page_size"), 25)

	total := len(items)
	start := (pageNum - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	next := ""
	if end < total {
		next = fmt.Sprintf("%s?page=%d&page_size=%d", c.Request.URL.Path, pageNum+1, pageSize)
	}
	previous := ""
	if pageNum > 1 {
		previous = fmt.Sprintf("%s?page=%d&page_size=%d", c.Request.URL.Path, pageNum-1, pageSize)
	}

	return gin.H{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  items[start:end],
	}
}

func parsePositiveIntWithDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
