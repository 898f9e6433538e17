package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

// Shipping policy: orders under the threshold pay a flat surcharge, orders at
// or above it ship free. The subtotal is always recomputed server-side from
// snapshot prices; client-supplied totals are ignored.
const (
	FreeShippingThreshold = 1999.0
	ShippingSurcharge     = 1000.0
)

func ShippingFor(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingSurcharge
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

type pendingLine struct {
	product  models.Product
	quantity int
}

// PlaceOrder converts the user's cart into an order. The whole cart is
// validated before any stock is touched, then every decrement runs as a
// conditional write inside one transaction, so a failure anywhere leaves no
// partial stock mutation behind.
func PlaceOrder(db *gorm.DB, userID string) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, &EmptyCartError{}
	}

	// Validation pass: re-fetch every product and check availability without
	// mutating anything.
	lines := make([]pendingLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ProductNotFoundError{ProductID: item.ProductID, Name: item.Product.Name}
			}
			return nil, err
		}
		if product.CountInStock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.CountInStock,
				Requested:   item.Quantity,
			}
		}
		lines = append(lines, pendingLine{product: product, quantity: item.Quantity})
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			subtotal += line.product.Price * float64(line.quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: line.product.ID,
				Name:      line.product.Name,
				Price:     line.product.Price,
				Image:     line.product.Image,
				Quantity:  line.quantity,
			})
		}

		shippingCost := ShippingFor(subtotal)
		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        &userID,
			Items:         orderItems,
			ShippingCost:  shippingCost,
			TotalAmount:   subtotal + shippingCost,
			PaymentMethod: models.PaymentMethodCOD,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Mutation pass. Each decrement only applies while enough stock
		// remains, so a concurrent checkout cannot oversell; a failed
		// decrement rolls the whole order back.
		for _, line := range lines {
			if _, err := applyStockDecrement(tx, line.product.ID, line.quantity, &order.ID, userID); err != nil {
				return err
			}
		}

		// Clear cart items
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// applyStockDecrement subtracts quantity from a product's stock as a single
// conditional write (decrement only if count_in_stock >= quantity), then
// recomputes the derived status and records the movement.
func applyStockDecrement(tx *gorm.DB, productID uint, quantity int, orderID *uint, byUserID string) (*models.Product, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND count_in_stock >= ?", productID, quantity).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost a race since the validation pass; report the live count.
		var fresh models.Product
		if err := tx.First(&fresh, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ProductNotFoundError{ProductID: productID}
			}
			return nil, err
		}
		return nil, &InsufficientStockError{
			ProductName: fresh.Name,
			Available:   fresh.CountInStock,
			Requested:   quantity,
		}
	}

	var fresh models.Product
	if err := tx.First(&fresh, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	status := models.DeriveStockStatus(fresh.CountInStock, fresh.ReorderPoint, fresh.LowStockThreshold)
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("stock_status", status).Error; err != nil {
		return nil, err
	}
	fresh.StockStatus = status

	history := models.StockHistory{
		ProductID:     productID,
		PreviousStock: fresh.CountInStock + quantity,
		NewStock:      fresh.CountInStock,
		ChangeType:    models.StockChangeOrder,
		OrderID:       orderID,
		CreatedBy:     byUserID,
	}
	if err := tx.Create(&history).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// findOrder looks an order up by numeric ID or by its order reference.
func findOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	query := db.Preload("Items").Preload("Notes")
	if id, err := strconv.ParseUint(orderID, 10, 64); err == nil {
		query = query.Where("id = ?", uint(id))
	} else {
		query = query.Where("order_ref = ?", orderID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &OrderNotFoundError{OrderID: orderID}
		}
		return nil, err
	}
	return &order, nil
}

// MarkDelivered flips the order to delivered and, since payment is collected
// at the door on COD, paid as well. Already-delivered orders are left
// untouched so timestamps are never re-stamped.
func MarkDelivered(db *gorm.DB, orderID string) (*models.Order, error) {
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsDelivered {
		return order, nil
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	order.IsPaid = true
	order.PaidAt = &now
	if err := db.Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// AddNote appends a note to an order's history.
func AddNote(db *gorm.DB, orderID, text, byUserID string) (*models.Order, error) {
	order, err := findOrder(db, orderID)
	if err != nil {
		return nil, err
	}

	note := models.OrderNote{
		OrderID:   order.ID,
		Text:      text,
		CreatedBy: byUserID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}
	order.Notes = append(order.Notes, note)
	return order, nil
}

// statusForError maps the order error taxonomy to HTTP statuses at the
// handler boundary.
func statusForError(err error) int {
	var (
		emptyCart         *EmptyCartError
		productNotFound   *ProductNotFoundError
		insufficientStock *InsufficientStockError
		orderNotFound     *OrderNotFoundError
		unauthorized      *UnauthorizedActionError
	)
	switch {
	case errors.As(err, &emptyCart), errors.As(err, &insufficientStock):
		return http.StatusBadRequest
	case errors.As(err, &productNotFound), errors.As(err, &orderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.As(err, &unauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := PlaceOrder(db, userIDVal.(string))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Preload("Items").
			Preload("Notes").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderId
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		isAdmin, _ := c.Get("is_admin")

		order, err := findOrder(db, c.Param("orderId"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		isOwner := order.UserID != nil && *order.UserID == userIDVal.(string)
		if !isOwner && isAdmin != true {
			err := &UnauthorizedActionError{Action: "view this order"}
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Notes").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/admin/orders/:orderId/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Status != "delivered" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		order, err := MarkDelivered(db, c.Param("orderId"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /api/admin/orders/:orderId/notes
func AddOrderNoteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")

		var req AddNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := AddNote(db, c.Param("orderId"), req.Note, userIDVal.(string))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
