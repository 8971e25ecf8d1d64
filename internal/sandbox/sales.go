// internal/sandbox/sales.go
package sandbox

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AddCustomer seeds a customer and returns it.
func (s *Sandbox) AddCustomer(name string) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := domain.Customer{
		ID:        s.nextID("customer"),
		Code:      fmt.Sprintf("CUST-%04d", s.nextID("customer-code")),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.customers[customer.ID] = &customer
	return customer
}

func (s *Sandbox) listCustomers(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	items := make([]domain.Customer, 0, len(s.customers))
	for _, cust := range s.customers {
		if matchesSearch(search, cust.Code, cust.Name, cust.Phone) {
			items = append(items, *cust)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createCustomer(c *gin.Context) {
	var req struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	s.mu.Lock()
	code := req.Code
	if code == "" {
		code = fmt.Sprintf("CUST-%04d", s.nextID("customer-code"))
	}
	customer := &domain.Customer{
		ID:        s.nextID("customer"),
		Code:      code,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.customers[customer.ID] = customer
	s.mu.Unlock()

	c.JSON(http.StatusCreated, customer)
}

func (s *Sandbox) listSalesOrders(c *gin.Context) {
	search := c.Query("search")
	status := c.Query("status")

	s.mu.Lock()
	items := make([]domain.SalesOrder, 0, len(s.salesOrders))
	for _, o := range s.salesOrders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if matchesSearch(search, o.OrderNumber, o.CustomerName) {
			items = append(items, *o)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) getSalesOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	order, found := s.salesOrders[id]
	var snapshot domain.SalesOrder
	if found {
		snapshot = *order
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type salesOrderRequest struct {
	CustomerID         int64           `json:"customer"`
	OrderDate          string          `json:"order_date"`
	ExpectedDelivery   string          `json:"expected_delivery_date"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	ShippingCost       decimal.Decimal `json:"shipping_cost"`
	Notes              string          `json:"notes"`
	Items              []struct {
		ProductID          int64           `json:"product"`
		Quantity           decimal.Decimal `json:"quantity"`
		UnitPrice          decimal.Decimal `json:"unit_price"`
		DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	} `json:"items"`
}

// buildSalesOrder validates the request and fills the order. A rejected
// request leaves the order untouched: everything is assembled on a scratch
// copy and only written back once the whole payload checks out. Callers must
// hold s.mu.
func (s *Sandbox) buildSalesOrder(c *gin.Context, req salesOrderRequest, order *domain.SalesOrder) bool {
	customer, found := s.customers[req.CustomerID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown customer"})
		return false
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
		return false
	}

	draft := *order
	draft.CustomerID = customer.ID
	draft.CustomerName = customer.Name
	draft.OrderDate = req.OrderDate
	draft.ExpectedDelivery = req.ExpectedDelivery
	draft.DiscountPercentage = req.DiscountPercentage
	draft.TaxPercentage = req.TaxPercentage
	draft.ShippingCost = req.ShippingCost
	draft.Notes = req.Notes
	draft.Items = nil

	for _, item := range req.Items {
		product, ok := s.products[item.ProductID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
			return false
		}
		if !item.Quantity.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return false
		}
		line := domain.TotalLine{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		}
		draft.Items = append(draft.Items, domain.SalesOrderItem{
			ID:                 s.nextID("sales-order-item"),
			ProductID:          product.ID,
			ProductSKU:         product.SKU,
			ProductName:        product.Name,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			LineTotal:          line.Total(),
		})
	}

	s.recomputeSalesOrder(&draft)
	*order = draft
	return true
}

// recomputeSalesOrder refreshes subtotal and total, including any down
// payments already applied to the order. Callers must hold s.mu.
func (s *Sandbox) recomputeSalesOrder(order *domain.SalesOrder) {
	dps := make([]domain.DownPayment, 0, len(s.downPayments))
	for _, dp := range s.downPayments {
		dps = append(dps, *dp)
	}
	totals := domain.SalesOrderTotals(*order, dps)
	order.Subtotal = totals.Subtotal
	order.DownPaymentAmount = totals.DownPayment
	order.TotalAmount = totals.Total
}

func (s *Sandbox) createSalesOrder(c *gin.Context) {
	var req salesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	order := &domain.SalesOrder{
		ID:            s.nextID("sales-order"),
		OrderNumber:   fmt.Sprintf("SO-%04d", s.nextID("sales-order-ref")),
		Status:        domain.OrderPending,
		StatusDisplay: "Pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !s.buildSalesOrder(c, req, order) {
		return
	}
	s.salesOrders[order.ID] = order

	c.JSON(http.StatusCreated, order)
}

func (s *Sandbox) updateSalesOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req salesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.salesOrders[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if order.Status != domain.OrderDraft && order.Status != domain.OrderPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only open orders can be edited"})
		return
	}
	if !s.buildSalesOrder(c, req, order) {
		return
	}
	order.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, order)
}

// transitionSalesOrder is the shared guts of the sales order action endpoints.
func (s *Sandbox) transitionSalesOrder(c *gin.Context, target domain.OrderStatus, effect func(*domain.SalesOrder) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.salesOrders[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if !order.Status.CanTransition(target) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot move sales order from %s to %s", order.Status, target),
		})
		return
	}

	if effect != nil {
		if err := effect(order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	order.Status = target
	order.StatusDisplay = string(target)
	order.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, order)
}

func (s *Sandbox) confirmSalesOrder(c *gin.Context) {
	// Confirmation reserves stock at the default location.
	s.transitionSalesOrder(c, domain.OrderConfirmed, func(order *domain.SalesOrder) error {
		demand := stockDemand{}
		for _, item := range order.Items {
			demand.add(item.ProductID, s.defaultLocation, item.Quantity)
		}
		if err := s.checkStockDemand(demand); err != nil {
			return err
		}
		for _, item := range order.Items {
			_ = s.applyStock(item.ProductID, s.defaultLocation, item.Quantity.Neg())
		}
		return nil
	})
}

func (s *Sandbox) approveSalesOrder(c *gin.Context) {
	// Approval issues the invoice for the outstanding amount.
	s.transitionSalesOrder(c, domain.OrderApproved, func(order *domain.SalesOrder) error {
		now := time.Now()
		invoice := &domain.Invoice{
			ID:            s.nextID("invoice"),
			InvoiceNumber: fmt.Sprintf("INV-%04d", s.nextID("invoice-ref")),
			SalesOrderID:  order.ID,
			CustomerID:    order.CustomerID,
			CustomerName:  order.CustomerName,
			InvoiceDate:   now.Format("2006-01-02"),
			DueDate:       now.AddDate(0, 0, 30).Format("2006-01-02"),
			Status:        domain.DocPending,
			TotalAmount:   order.TotalAmount,
			Balance:       order.TotalAmount,
			CreatedAt:     now,
		}
		s.invoices[invoice.ID] = invoice
		return nil
	})
}

func (s *Sandbox) deliverSalesOrder(c *gin.Context) {
	s.transitionSalesOrder(c, domain.OrderDelivered, nil)
}

func (s *Sandbox) cancelSalesOrder(c *gin.Context) {
	s.transitionSalesOrder(c, domain.OrderCancelled, func(order *domain.SalesOrder) error {
		// Stock was only taken at confirmation; return it when cancelling later.
		if order.Status == domain.OrderConfirmed || order.Status == domain.OrderApproved {
			for _, item := range order.Items {
				_ = s.applyStock(item.ProductID, s.defaultLocation, item.Quantity)
			}
		}
		return nil
	})
}

func (s *Sandbox) listInvoices(c *gin.Context) {
	search := c.Query("search")
	status := c.Query("status")

	s.mu.Lock()
	items := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if status != "" && string(inv.Status) != status {
			continue
		}
		if matchesSearch(search, inv.InvoiceNumber, inv.CustomerName) {
			items = append(items, *inv)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) listDownPayments(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.DownPayment, 0, len(s.downPayments))
	for _, dp := range s.downPayments {
		items = append(items, *dp)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createDownPayment(c *gin.Context) {
	var req struct {
		CustomerID   int64           `json:"customer"`
		SalesOrderID int64           `json:"sales_order"`
		Amount       decimal.Decimal `json:"amount"`
		PaymentDate  string          `json:"payment_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.salesOrders[req.SalesOrderID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sales order"})
		return
	}

	dp := &domain.DownPayment{
		ID:           s.nextID("down-payment"),
		Number:       fmt.Sprintf("DP-%04d", s.nextID("down-payment-ref")),
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		SalesOrderID: order.ID,
		Amount:       req.Amount,
		Status:       domain.DocPaid,
		PaymentDate:  req.PaymentDate,
		CreatedAt:    time.Now(),
	}
	s.downPayments[dp.ID] = dp

	// The order's outstanding total shrinks by the prepayment.
	s.recomputeSalesOrder(order)

	c.JSON(http.StatusCreated, dp)
}

func (s *Sandbox) listSalesReturns(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.SalesReturn, 0, len(s.salesReturns))
	for _, ret := range s.salesReturns {
		items = append(items, *ret)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createSalesReturn(c *gin.Context) {
	var req struct {
		SalesOrderID int64  `json:"sales_order"`
		ReturnDate   string `json:"return_date"`
		Items        []struct {
			ProductID int64           `json:"product"`
			Quantity  decimal.Decimal `json:"quantity"`
			Reason    string          `json:"reason"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.salesOrders[req.SalesOrderID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sales order"})
		return
	}
	if order.Status != domain.OrderDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only delivered orders can be returned"})
		return
	}

	ret := &domain.SalesReturn{
		ID:           s.nextID("sales-return"),
		ReturnNumber: fmt.Sprintf("SR-%04d", s.nextID("sales-return-ref")),
		SalesOrderID: order.ID,
		CustomerID:   order.CustomerID,
		ReturnDate:   req.ReturnDate,
		Status:       domain.DocCompleted,
		CreatedAt:    time.Now(),
	}
	for _, item := range req.Items {
		// Returned goods go back on hand.
		_ = s.applyStock(item.ProductID, s.defaultLocation, item.Quantity)
		ret.Items = append(ret.Items, domain.SalesReturnItem{
			ID:        s.nextID("sales-return-item"),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}
	s.salesReturns[ret.ID] = ret

	c.JSON(http.StatusCreated, ret)
}
