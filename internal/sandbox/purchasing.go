// internal/sandbox/purchasing.go
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

// AddSupplier seeds a supplier and returns it.
func (s *Sandbox) AddSupplier(name string) domain.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier := domain.Supplier{
		ID:        s.nextID("supplier"),
		Code:      fmt.Sprintf("SUP-%04d", s.nextID("supplier-code")),
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.suppliers[supplier.ID] = &supplier
	return supplier
}

func (s *Sandbox) listSuppliers(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	items := make([]domain.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if matchesSearch(search, sup.Code, sup.Name, sup.ContactPerson) {
			items = append(items, *sup)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createSupplier(c *gin.Context) {
	var req struct {
		Code          string `json:"code"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		ContactPerson string `json:"contact_person"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	s.mu.Lock()
	code := req.Code
	if code == "" {
		code = fmt.Sprintf("SUP-%04d", s.nextID("supplier-code"))
	}
	supplier := &domain.Supplier{
		ID:            s.nextID("supplier"),
		Code:          code,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	s.suppliers[supplier.ID] = supplier
	s.mu.Unlock()

	c.JSON(http.StatusCreated, supplier)
}

func (s *Sandbox) listPurchaseOrders(c *gin.Context) {
	search := c.Query("search")
	status := c.Query("status")

	s.mu.Lock()
	items := make([]domain.PurchaseOrder, 0, len(s.purchaseOrders))
	for _, o := range s.purchaseOrders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if matchesSearch(search, o.OrderNumber, o.SupplierName) {
			items = append(items, *o)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) getPurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	order, found := s.purchaseOrders[id]
	var snapshot domain.PurchaseOrder
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

func (s *Sandbox) createPurchaseOrder(c *gin.Context) {
	var req struct {
		SupplierID         int64           `json:"supplier"`
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
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, found := s.suppliers[req.SupplierID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown supplier"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
		return
	}

	now := time.Now()
	order := &domain.PurchaseOrder{
		ID:                 s.nextID("purchase-order"),
		OrderNumber:        fmt.Sprintf("PO-%04d", s.nextID("purchase-order-ref")),
		SupplierID:         supplier.ID,
		SupplierName:       supplier.Name,
		OrderDate:          req.OrderDate,
		ExpectedDelivery:   req.ExpectedDelivery,
		Status:             domain.PurchaseDraft,
		StatusDisplay:      "Draft",
		DiscountPercentage: req.DiscountPercentage,
		TaxPercentage:      req.TaxPercentage,
		ShippingCost:       req.ShippingCost,
		Notes:              req.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, item := range req.Items {
		product, ok := s.products[item.ProductID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
			return
		}
		if !item.Quantity.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		line := domain.TotalLine{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
		}
		order.Items = append(order.Items, domain.PurchaseOrderItem{
			ID:                 s.nextID("purchase-order-item"),
			ProductID:          product.ID,
			ProductSKU:         product.SKU,
			ProductName:        product.Name,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			LineTotal:          line.Total(),
		})
	}

	totals := domain.PurchaseOrderTotals(*order)
	order.Subtotal = totals.Subtotal
	order.TotalAmount = totals.Total
	s.purchaseOrders[order.ID] = order

	c.JSON(http.StatusCreated, order)
}

func (s *Sandbox) transitionPurchaseOrder(c *gin.Context, target domain.PurchaseStatus, effect func(*domain.PurchaseOrder) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, found := s.purchaseOrders[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if !order.Status.CanTransition(target) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot move purchase order from %s to %s", order.Status, target),
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

func (s *Sandbox) submitPurchaseOrder(c *gin.Context) {
	s.transitionPurchaseOrder(c, domain.PurchaseSubmitted, nil)
}

func (s *Sandbox) approvePurchaseOrder(c *gin.Context) {
	s.transitionPurchaseOrder(c, domain.PurchaseApproved, nil)
}

func (s *Sandbox) receivePurchaseOrder(c *gin.Context) {
	// Receiving puts goods on hand and raises the supplier bill.
	s.transitionPurchaseOrder(c, domain.PurchaseReceived, func(order *domain.PurchaseOrder) error {
		for i := range order.Items {
			item := &order.Items[i]
			if err := s.applyStock(item.ProductID, s.defaultLocation, item.Quantity); err != nil {
				return err
			}
			item.ReceivedQuantity = item.Quantity
		}
		now := time.Now()
		bill := &domain.Bill{
			ID:              s.nextID("bill"),
			BillNumber:      fmt.Sprintf("BILL-%04d", s.nextID("bill-ref")),
			PurchaseOrderID: order.ID,
			SupplierID:      order.SupplierID,
			SupplierName:    order.SupplierName,
			BillDate:        now.Format("2006-01-02"),
			DueDate:         now.AddDate(0, 0, 30).Format("2006-01-02"),
			Status:          domain.DocPending,
			TotalAmount:     order.TotalAmount,
			Balance:         order.TotalAmount,
			CreatedAt:       now,
		}
		s.bills[bill.ID] = bill
		return nil
	})
}

func (s *Sandbox) listBills(c *gin.Context) {
	search := c.Query("search")
	status := c.Query("status")

	s.mu.Lock()
	items := make([]domain.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		if status != "" && string(b.Status) != status {
			continue
		}
		if matchesSearch(search, b.BillNumber, b.SupplierName) {
			items = append(items, *b)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) listSupplierPayments(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.SupplierPayment, 0, len(s.payments))
	for _, p := range s.payments {
		items = append(items, *p)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createSupplierPayment(c *gin.Context) {
	var req struct {
		BillID      int64           `json:"bill"`
		Amount      decimal.Decimal `json:"amount"`
		PaymentDate string          `json:"payment_date"`
		Method      string          `json:"method"`
		Reference   string          `json:"reference"`
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

	bill, found := s.bills[req.BillID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown bill"})
		return
	}
	if req.Amount.GreaterThan(bill.Balance) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount exceeds bill balance"})
		return
	}

	payment := &domain.SupplierPayment{
		ID:            s.nextID("supplier-payment"),
		PaymentNumber: fmt.Sprintf("PAY-%04d", s.nextID("supplier-payment-ref")),
		BillID:        bill.ID,
		SupplierID:    bill.SupplierID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		Method:        req.Method,
		Reference:     req.Reference,
		CreatedAt:     time.Now(),
	}
	s.payments[payment.ID] = payment

	bill.PaidAmount = bill.PaidAmount.Add(req.Amount)
	bill.Balance = bill.TotalAmount.Sub(bill.PaidAmount)
	if bill.Balance.IsZero() {
		bill.Status = domain.DocPaid
	} else {
		bill.Status = domain.DocPartiallyPaid
	}

	c.JSON(http.StatusCreated, payment)
}

func (s *Sandbox) listConsignmentReceipts(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.ConsignmentReceipt, 0, len(s.consignments))
	for _, r := range s.consignments {
		items = append(items, *r)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createConsignmentReceipt(c *gin.Context) {
	var req struct {
		SupplierID  int64  `json:"supplier"`
		LocationID  int64  `json:"location"`
		ReceiptDate string `json:"receipt_date"`
		Items       []struct {
			ProductID int64           `json:"product"`
			Quantity  decimal.Decimal `json:"quantity"`
			UnitCost  decimal.Decimal `json:"unit_cost"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, found := s.suppliers[req.SupplierID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown supplier"})
		return
	}
	locationID := req.LocationID
	if locationID == 0 {
		locationID = s.defaultLocation
	}
	if _, ok := s.locations[locationID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
		return
	}

	receipt := &domain.ConsignmentReceipt{
		ID:            s.nextID("consignment"),
		ReceiptNumber: fmt.Sprintf("CR-%04d", s.nextID("consignment-ref")),
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		LocationID:    locationID,
		ReceiptDate:   req.ReceiptDate,
		Status:        domain.DocCompleted,
		CreatedAt:     time.Now(),
	}
	for _, item := range req.Items {
		if _, ok := s.products[item.ProductID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
			return
		}
		if err := s.applyStock(item.ProductID, locationID, item.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		receipt.Items = append(receipt.Items, domain.ConsignmentReceiptItem{
			ID:        s.nextID("consignment-item"),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}
	s.consignments[receipt.ID] = receipt

	c.JSON(http.StatusCreated, receipt)
}
