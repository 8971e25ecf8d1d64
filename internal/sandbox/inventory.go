// internal/sandbox/inventory.go
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

// AddLocation seeds a location and returns it.
func (s *Sandbox) AddLocation(code, name string) domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := domain.Location{ID: s.nextID("location"), Code: code, Name: name, IsActive: true}
	s.locations[loc.ID] = &loc
	if s.defaultLocation == 0 {
		s.defaultLocation = loc.ID
	}
	return loc
}

// AddProduct seeds a product and returns it.
func (s *Sandbox) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID("product")
	p.IsActive = true
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = &p
	return p
}

// SetStock seeds the on-hand quantity for a product at a location.
func (s *Sandbox) SetStock(productID, locationID int64, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.stockRecord(productID, locationID)
	diff := qty.Sub(rec.QuantityOnHand)
	rec.QuantityOnHand = qty
	rec.UpdatedAt = time.Now()
	if p, ok := s.products[productID]; ok {
		p.CurrentStock = p.CurrentStock.Add(diff)
	}
}

// stockRecord returns (creating if needed) the record for product@location.
// Callers must hold s.mu.
func (s *Sandbox) stockRecord(productID, locationID int64) *domain.StockRecord {
	key := stockKey{product: productID, location: locationID}
	rec, ok := s.stock[key]
	if !ok {
		product := s.products[productID]
		location := s.locations[locationID]
		rec = &domain.StockRecord{
			ID:         s.nextID("stock"),
			ProductID:  productID,
			LocationID: locationID,
		}
		if product != nil {
			rec.ProductSKU = product.SKU
			rec.ProductName = product.Name
			rec.ReorderPoint = product.ReorderPoint
			rec.AverageCost = product.CostPrice
		}
		if location != nil {
			rec.LocationName = location.Name
		}
		s.stock[key] = rec
	}
	return rec
}

// applyStock changes on-hand quantity by a signed delta. Callers must hold
// s.mu. Returns an error when the result would go negative.
func (s *Sandbox) applyStock(productID, locationID int64, delta decimal.Decimal) error {
	rec := s.stockRecord(productID, locationID)
	next := rec.QuantityOnHand.Add(delta)
	if next.IsNegative() {
		sku := fmt.Sprintf("product %d", productID)
		if p, ok := s.products[productID]; ok {
			sku = p.SKU
		}
		return fmt.Errorf("insufficient stock for %s", sku)
	}
	rec.QuantityOnHand = next
	rec.UpdatedAt = time.Now()
	if p, ok := s.products[productID]; ok {
		p.CurrentStock = p.CurrentStock.Add(delta)
	}
	return nil
}

// stockDemand accumulates planned deductions so a multi-line operation can be
// validated as a whole before any line is applied. Duplicate lines against the
// same product and location add up.
type stockDemand map[stockKey]decimal.Decimal

func (d stockDemand) add(productID, locationID int64, qty decimal.Decimal) {
	key := stockKey{product: productID, location: locationID}
	d[key] = d[key].Add(qty)
}

// checkStockDemand verifies every accumulated deduction fits the on-hand
// quantity without mutating anything. Callers must hold s.mu.
func (s *Sandbox) checkStockDemand(d stockDemand) error {
	for key, qty := range d {
		rec := s.stockRecord(key.product, key.location)
		if rec.QuantityOnHand.LessThan(qty) {
			sku := fmt.Sprintf("product %d", key.product)
			if p, ok := s.products[key.product]; ok {
				sku = p.SKU
			}
			return fmt.Errorf("insufficient stock for %s", sku)
		}
	}
	return nil
}

func (s *Sandbox) listProducts(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	items := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if matchesSearch(search, p.SKU, p.Name, p.Brand) {
			items = append(items, *p)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

type productRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Color          string          `json:"color"`
	Size           string          `json:"size"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	IsPurchasable  bool            `json:"is_purchasable"`
	IsManufactured bool            `json:"is_manufactured"`
}

func (s *Sandbox) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.SKU == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku and name are required"})
		return
	}

	s.mu.Lock()
	for _, p := range s.products {
		if p.SKU == req.SKU {
			s.mu.Unlock()
			c.JSON(http.StatusBadRequest, gin.H{"error": "product with this sku already exists"})
			return
		}
	}
	now := time.Now()
	product := &domain.Product{
		ID:             s.nextID("product"),
		SKU:            req.SKU,
		Name:           req.Name,
		Brand:          req.Brand,
		Color:          req.Color,
		Size:           req.Size,
		CostPrice:      req.CostPrice,
		SellingPrice:   req.SellingPrice,
		ReorderPoint:   req.ReorderPoint,
		IsPurchasable:  req.IsPurchasable,
		IsManufactured: req.IsManufactured,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.products[product.ID] = product
	s.mu.Unlock()

	c.JSON(http.StatusCreated, product)
}

func (s *Sandbox) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	product, found := s.products[id]
	var snapshot domain.Product
	if found {
		snapshot = *product
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Sandbox) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	s.mu.Lock()
	product, found := s.products[id]
	var snapshot domain.Product
	if found {
		product.SKU = req.SKU
		product.Name = req.Name
		product.Brand = req.Brand
		product.Color = req.Color
		product.Size = req.Size
		product.CostPrice = req.CostPrice
		product.SellingPrice = req.SellingPrice
		product.ReorderPoint = req.ReorderPoint
		product.IsPurchasable = req.IsPurchasable
		product.IsManufactured = req.IsManufactured
		product.UpdatedAt = time.Now()
		snapshot = *product
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Sandbox) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	_, found := s.products[id]
	delete(s.products, id)
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Sandbox) listLocations(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	items := make([]domain.Location, 0, len(s.locations))
	for _, l := range s.locations {
		if matchesSearch(search, l.Code, l.Name) {
			items = append(items, *l)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) listStock(c *gin.Context) {
	search := c.Query("search")
	location := c.Query("location")

	s.mu.Lock()
	items := make([]domain.StockRecord, 0, len(s.stock))
	for _, rec := range s.stock {
		if location != "" && location != fmt.Sprint(rec.LocationID) {
			continue
		}
		if matchesSearch(search, rec.ProductSKU, rec.ProductName) {
			items = append(items, *rec)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) listMovements(c *gin.Context) {
	search := c.Query("search")
	movementType := c.Query("movement_type")

	s.mu.Lock()
	items := make([]domain.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		if movementType != "" && string(m.MovementType) != movementType {
			continue
		}
		if matchesSearch(search, m.ProductSKU, m.ReferenceNumber) {
			items = append(items, *m)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createMovement(c *gin.Context) {
	var req struct {
		ProductID       int64           `json:"product"`
		MovementType    string          `json:"movement_type"`
		Quantity        decimal.Decimal `json:"quantity"`
		LocationID      int64           `json:"location"`
		ReferenceNumber string          `json:"reference_number"`
		Notes           string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	movementType, ok := domain.ParseMovementType(req.MovementType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown movement type"})
		return
	}
	if req.Quantity.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be non-zero"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, found := s.products[req.ProductID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
		return
	}
	if _, found := s.locations[req.LocationID]; !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
		return
	}

	if err := s.applyStock(req.ProductID, req.LocationID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reference := req.ReferenceNumber
	if reference == "" {
		reference = fmt.Sprintf("MV-%04d", s.nextID("movement-ref"))
	}
	movement := &domain.StockMovement{
		ID:              s.nextID("movement"),
		ProductID:       req.ProductID,
		ProductSKU:      product.SKU,
		MovementType:    movementType,
		Quantity:        req.Quantity,
		LocationID:      req.LocationID,
		LocationName:    s.locations[req.LocationID].Name,
		ReferenceNumber: reference,
		Notes:           req.Notes,
		Status:          "COMPLETED",
		CreatedBy:       currentUser(c).Username,
		CreatedAt:       time.Now(),
	}
	s.movements = append(s.movements, movement)

	c.JSON(http.StatusCreated, movement)
}

func (s *Sandbox) listTransfers(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.StockTransfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		items = append(items, *t)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) createTransfer(c *gin.Context) {
	var req struct {
		SourceLocationID      int64  `json:"source_location"`
		DestinationLocationID int64  `json:"destination_location"`
		Notes                 string `json:"notes"`
		Items                 []struct {
			ProductID int64           `json:"product"`
			Quantity  decimal.Decimal `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.SourceLocationID == req.DestinationLocationID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and destination must differ"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one item is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.locations[req.SourceLocationID]
	dest, destOK := s.locations[req.DestinationLocationID]
	if !ok || !destOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
		return
	}

	transfer := &domain.StockTransfer{
		ID:                    s.nextID("transfer"),
		ReferenceNumber:       fmt.Sprintf("TR-%04d", s.nextID("transfer-ref")),
		SourceLocationID:      source.ID,
		SourceLocationName:    source.Name,
		DestinationLocationID: dest.ID,
		DestinationLocation:   dest.Name,
		Status:                domain.TransferPending,
		Notes:                 req.Notes,
		CreatedAt:             time.Now(),
	}
	for _, item := range req.Items {
		product, found := s.products[item.ProductID]
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
			return
		}
		transfer.Items = append(transfer.Items, domain.StockTransferItem{
			ID:         s.nextID("transfer-item"),
			ProductID:  product.ID,
			ProductSKU: product.SKU,
			Quantity:   item.Quantity,
		})
	}
	s.transfers[transfer.ID] = transfer

	c.JSON(http.StatusCreated, transfer)
}

func (s *Sandbox) completeTransfer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transfer, found := s.transfers[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if transfer.Status != domain.TransferPending && transfer.Status != domain.TransferInTransit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transfer is not open"})
		return
	}

	// Validate every source deduction up front so a short line rejects the
	// whole transfer with no stock moved.
	demand := stockDemand{}
	for _, item := range transfer.Items {
		demand.add(item.ProductID, transfer.SourceLocationID, item.Quantity)
	}
	if err := s.checkStockDemand(demand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, item := range transfer.Items {
		_ = s.applyStock(item.ProductID, transfer.SourceLocationID, item.Quantity.Neg())
		_ = s.applyStock(item.ProductID, transfer.DestinationLocationID, item.Quantity)
	}
	transfer.Status = domain.TransferCompleted

	c.JSON(http.StatusOK, transfer)
}

func (s *Sandbox) listBOMs(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	items := make([]domain.BOM, 0, len(s.boms))
	for _, b := range s.boms {
		if matchesSearch(search, b.Code, b.ProductSKU, b.ProductName) {
			items = append(items, *b)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) getBOM(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	bom, found := s.boms[id]
	var snapshot domain.BOM
	if found {
		snapshot = *bom
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Sandbox) createBOM(c *gin.Context) {
	var req struct {
		ProductID  int64  `json:"product"`
		Code       string `json:"code"`
		Components []struct {
			ComponentID int64           `json:"component"`
			Quantity    decimal.Decimal `json:"quantity"`
		} `json:"components"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(req.Components) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one component is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, found := s.products[req.ProductID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown product"})
		return
	}

	code := req.Code
	if code == "" {
		code = fmt.Sprintf("BOM-%04d", s.nextID("bom-code"))
	}
	bom := &domain.BOM{
		ID:          s.nextID("bom"),
		Code:        code,
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	for _, comp := range req.Components {
		component, ok := s.products[comp.ComponentID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown component product"})
			return
		}
		bom.Components = append(bom.Components, domain.BOMComponent{
			ID:           s.nextID("bom-component"),
			ComponentID:  component.ID,
			ComponentSKU: component.SKU,
			Name:         component.Name,
			Quantity:     comp.Quantity,
		})
	}
	s.boms[bom.ID] = bom

	c.JSON(http.StatusCreated, bom)
}

func (s *Sandbox) listAssemblies(c *gin.Context) {
	status := c.Query("status")

	s.mu.Lock()
	items := make([]domain.AssemblyOrder, 0, len(s.asms))
	for _, a := range s.asms {
		if status != "" && string(a.Status) != status {
			continue
		}
		items = append(items, *a)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	c.JSON(http.StatusOK, page(c, items))
}

func (s *Sandbox) getAssembly(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	asm, found := s.asms[id]
	var snapshot domain.AssemblyOrder
	if found {
		snapshot = *asm
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Sandbox) createAssembly(c *gin.Context) {
	var req struct {
		BOMID       int64           `json:"bom"`
		LocationID  int64           `json:"location"`
		Quantity    decimal.Decimal `json:"quantity"`
		PlannedDate string          `json:"planned_date"`
		Notes       string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !req.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bom, found := s.boms[req.BOMID]
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown bom"})
		return
	}
	if _, found := s.locations[req.LocationID]; !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
		return
	}

	now := time.Now()
	asm := &domain.AssemblyOrder{
		ID:            s.nextID("assembly"),
		OrderNumber:   fmt.Sprintf("ASM-%04d", s.nextID("assembly-ref")),
		BOMID:         bom.ID,
		ProductID:     bom.ProductID,
		ProductSKU:    bom.ProductSKU,
		ProductName:   bom.ProductName,
		LocationID:    req.LocationID,
		Quantity:      req.Quantity,
		Status:        domain.AssemblyDraft,
		StatusDisplay: domain.AssemblyStatusLabel(domain.AssemblyDraft),
		PlannedDate:   req.PlannedDate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.asms[asm.ID] = asm

	c.JSON(http.StatusCreated, asm)
}

var assemblyActions = map[string]domain.AssemblyStatus{
	"plan":     domain.AssemblyPlanned,
	"release":  domain.AssemblyReleased,
	"start":    domain.AssemblyInProgress,
	"hold":     domain.AssemblyOnHold,
	"resume":   domain.AssemblyInProgress,
	"complete": domain.AssemblyCompleted,
	"cancel":   domain.AssemblyCancelled,
}

func (s *Sandbox) transitionAssembly(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	target, known := assemblyActions[c.Param("action")]
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asm, found := s.asms[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if !asm.Status.CanTransition(target) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot move assembly order from %s to %s", asm.Status, target),
		})
		return
	}

	if target == domain.AssemblyCompleted {
		bom := s.boms[asm.BOMID]
		// Validate the full component demand before consuming anything, then
		// produce the output at the same location.
		demand := stockDemand{}
		for _, comp := range bom.Components {
			demand.add(comp.ComponentID, asm.LocationID, comp.Quantity.Mul(asm.Quantity))
		}
		if err := s.checkStockDemand(demand); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, comp := range bom.Components {
			_ = s.applyStock(comp.ComponentID, asm.LocationID, comp.Quantity.Mul(asm.Quantity).Neg())
		}
		_ = s.applyStock(asm.ProductID, asm.LocationID, asm.Quantity)
		asm.CompletedDate = time.Now().Format("2006-01-02")
	}

	asm.Status = target
	asm.StatusDisplay = domain.AssemblyStatusLabel(target)
	asm.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, asm)
}
