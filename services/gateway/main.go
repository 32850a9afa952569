package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/medimart/storefront-gateway/internal/cache"
	"github.com/medimart/storefront-gateway/internal/cart"
	"github.com/medimart/storefront-gateway/internal/clients"
	"github.com/medimart/storefront-gateway/internal/gate"
	"github.com/medimart/storefront-gateway/internal/metrics"
	"github.com/medimart/storefront-gateway/internal/models"
	"github.com/medimart/storefront-gateway/internal/nav"
)

const serviceName = "storefront-gateway"

// GatewayService fronts the marketplace API server and the auth provider:
// it enforces the access gate, reconciles cart payloads, and passes CRUD
// through to the collaborators.
type GatewayService struct {
	clients *clients.Set
	tags    *cache.Tags
}

var gateway *GatewayService

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	apiURL := getEnv("API_URL", "http://localhost:5000")
	authURL := getEnv("AUTH_URL", "http://localhost:5001")
	port := getEnv("PORT", "8080")

	tags := cache.NewTags()
	gateway = &GatewayService{
		clients: clients.NewSet(apiURL, authURL, serviceName, tags),
		tags:    tags,
	}

	router := newRouter()

	log.WithFields(log.Fields{
		"api_url":  apiURL,
		"auth_url": authURL,
	}).Info("Storefront gateway starting on port " + port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// newRouter wires the middleware chain and the full route surface. The
// access gate runs on every route; only its zone rules decide what is
// actually protected.
func newRouter() *gin.Engine {
	router := gin.Default()

	router.Use(metrics.PrometheusMiddleware(serviceName))
	router.Use(requestIDMiddleware())
	router.Use(gate.Middleware(gateway.clients.Session))

	// Health check endpoint, with per-collaborator circuit state
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"circuits":  gateway.clients.CircuitStates(),
			"bulkheads": gateway.clients.BulkheadNames(),
		})
	})

	// Public shop surface
	router.GET("/shop", listMedicines)
	router.GET("/shop/:id", getMedicine)
	router.GET("/categories", listCategories)

	// Customer cart and checkout (gated to CUSTOMER by the access gate)
	router.GET("/cart", viewCart)
	router.POST("/cart/items", addToCart)
	router.PATCH("/cart/items/:id", adjustQuantity)
	router.DELETE("/cart/items/:id", removeLineItem)
	router.POST("/order", placeOrder)
	router.GET("/order", listMyOrders)
	router.GET("/order/:id", getOrder)

	// Role dispatch entry point; the gate always redirects before this runs
	router.GET("/dashboard", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Dashboards
	router.GET("/customer-dashboard", dashboardHome)
	router.GET("/customer-dashboard/profile", dashboardProfile)
	router.GET("/seller-dashboard/profile", dashboardProfile)
	router.GET("/admin-dashboard/profile", dashboardProfile)

	// Seller dashboard (gated to SELLER)
	router.GET("/seller-dashboard/medicine", listMedicines)
	router.POST("/seller-dashboard/medicine", createMedicine)
	router.PATCH("/seller-dashboard/medicine/:id", updateMedicine)
	router.GET("/seller-dashboard/order", listMyOrders)
	router.GET("/seller-dashboard/order/:id", getOrder)
	router.PATCH("/seller-dashboard/order/:id", updateOrder)

	// Admin dashboard (gated to ADMIN)
	router.GET("/admin-dashboard/medicine", listMedicines)
	router.POST("/admin-dashboard/medicine", createMedicine)
	router.PATCH("/admin-dashboard/medicine/:id", updateMedicine)
	router.DELETE("/admin-dashboard/medicine/:id", deleteMedicine)
	router.GET("/admin-dashboard/category", listCategories)
	router.POST("/admin-dashboard/category", createCategory)
	router.PATCH("/admin-dashboard/category/:id", updateCategory)
	router.DELETE("/admin-dashboard/category/:id", deleteCategory)
	router.GET("/admin-dashboard/user", listUsers)
	router.GET("/admin-dashboard/user/:id", getUser)
	router.PATCH("/admin-dashboard/user/:id", updateUserStatus)
	router.DELETE("/admin-dashboard/user/:id", deleteUser)
	router.GET("/admin-dashboard/order", listMyOrders)
	router.GET("/admin-dashboard/order/:id", getOrder)
	router.PATCH("/admin-dashboard/order/:id", updateOrder)
	router.DELETE("/admin-dashboard/order/:id", deleteOrder)
	router.DELETE("/admin-dashboard/review/:id", deleteReview)

	// Reviews (collaborator enforces ownership)
	router.GET("/reviews", listReviews)
	router.POST("/reviews", createReview)
	router.PATCH("/reviews/:id", updateReview)
	router.DELETE("/reviews/:id", deleteReview)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestIDMiddleware attaches a request id to the context and response for
// log correlation across collaborator calls.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// respondCollaboratorError maps a collaborator failure onto the transient
// error notification the UI renders. Business errors keep their message;
// transport failures collapse to a generic one.
func respondCollaboratorError(c *gin.Context, err error) {
	var remote *clients.RemoteError
	if errors.As(err, &remote) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": remote.Message})
		return
	}
	log.WithField("path", c.Request.URL.Path).Error("Collaborator call failed: ", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "something went wrong"})
}

func cookieOf(c *gin.Context) string {
	return c.GetHeader("Cookie")
}

// --- Shop ---

func listMedicines(c *gin.Context) {
	var filter models.MedicineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters: " + err.Error()})
		return
	}

	medicines, err := gateway.clients.Medicine.List(c.Request.Context(), filter)
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.Header("X-Cache-Version", versionHeader(cache.TagMedicine))
	c.JSON(http.StatusOK, gin.H{"data": medicines})
}

func getMedicine(c *gin.Context) {
	medicine, err := gateway.clients.Medicine.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}

	reviews, err := gateway.clients.Review.ListForMedicine(c.Request.Context(), medicine.ID)
	if err != nil {
		// The detail page still renders without reviews.
		log.WithField("medicine_id", medicine.ID).Warn("Failed to load reviews: ", err)
		reviews = nil
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"medicine": medicine,
		"reviews":  reviews,
	}})
}

func listCategories(c *gin.Context) {
	categories, err := gateway.clients.Category.List(c.Request.Context())
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.Header("X-Cache-Version", versionHeader(cache.TagCategory))
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// --- Cart ---

func viewCart(c *gin.Context) {
	payload, err := gateway.clients.Cart.GetMyCart(c.Request.Context(), cookieOf(c))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}

	items := cart.Normalize(payload)
	subtotal, total := cart.ComputeTotals(items)

	c.Header("X-Cache-Version", versionHeader(cache.TagCart))
	c.JSON(http.StatusOK, gin.H{"data": models.CartView{
		Items:    items,
		Subtotal: subtotal,
		Total:    total,
	}})
}

func addToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", "validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// The product's stock is the quantity ceiling at add-to-cart time.
	medicine, err := gateway.clients.Medicine.GetByID(c.Request.Context(), req.MedicineID)
	if err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", "failed").Inc()
		respondCollaboratorError(c, err)
		return
	}
	if _, err := cart.AdjustQuantity(0, req.Quantity, medicine.Stock); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", "rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := gate.SessionFrom(c)
	if err := gateway.clients.Cart.CreateLineItem(c.Request.Context(), cookieOf(c), session.UserID, req.MedicineID, req.Quantity); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("add", "failed").Inc()
		respondCollaboratorError(c, err)
		return
	}

	metrics.CartMutationsTotal.WithLabelValues("add", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

func adjustQuantity(c *gin.Context) {
	id := c.Param("id")

	var req models.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("adjust", "validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	payload, err := gateway.clients.Cart.GetMyCart(c.Request.Context(), cookieOf(c))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}

	var current *models.CartLineItem
	for _, item := range cart.Normalize(payload) {
		if item.ID == id {
			item := item
			current = &item
			break
		}
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "line item not found"})
		return
	}

	// Stock is re-checked on the cart page too, not only at add-to-cart
	// time. A failed lookup skips the ceiling; the order collaborator
	// remains the final authority.
	stock := cart.StockUnknown
	if medicine, err := gateway.clients.Medicine.GetByID(c.Request.Context(), current.MedicineID); err == nil {
		stock = medicine.Stock
	}

	next, err := cart.AdjustQuantity(current.Quantity, req.Delta, stock)
	if err != nil {
		metrics.CartMutationsTotal.WithLabelValues("adjust", "rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "quantity": current.Quantity})
		return
	}

	// No optimistic update: the response quantity is only reported after
	// the collaborator confirms it.
	if err := gateway.clients.Cart.UpdateLineItem(c.Request.Context(), cookieOf(c), id, next); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("adjust", "failed").Inc()
		respondCollaboratorError(c, err)
		return
	}

	metrics.CartMutationsTotal.WithLabelValues("adjust", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully", "quantity": next})
}

func removeLineItem(c *gin.Context) {
	if err := gateway.clients.Cart.DeleteLineItem(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		metrics.CartMutationsTotal.WithLabelValues("remove", "failed").Inc()
		respondCollaboratorError(c, err)
		return
	}
	metrics.CartMutationsTotal.WithLabelValues("remove", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

// --- Checkout and orders ---

func placeOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.PaymentGateway == "" {
		req.PaymentGateway = "cod"
	}

	payload, err := gateway.clients.Cart.GetMyCart(c.Request.Context(), cookieOf(c))
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		respondCollaboratorError(c, err)
		return
	}

	items := cart.Normalize(payload)
	if err := cart.ValidateDraft(items, req.ShippingAddress); err != nil {
		metrics.OrdersTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, total := cart.ComputeTotals(items)

	draft := models.OrderDraft{
		ShippingAddress: req.ShippingAddress,
		PaymentGateway:  req.PaymentGateway,
	}
	order, err := gateway.clients.Order.CreateOrder(c.Request.Context(), cookieOf(c), draft, uuid.New().String())
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		respondCollaboratorError(c, err)
		return
	}

	metrics.OrdersTotal.WithLabelValues("placed").Inc()
	metrics.CheckoutAmount.Observe(total)

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(items),
		"total":    total,
	}).Info("Order placed")

	c.JSON(http.StatusOK, gin.H{"data": order, "message": "Order placed successfully"})
}

func listMyOrders(c *gin.Context) {
	orders, err := gateway.clients.Order.GetOrders(c.Request.Context(), cookieOf(c))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.Header("X-Cache-Version", versionHeader(cache.TagOrder))
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func getOrder(c *gin.Context) {
	order, err := gateway.clients.Order.GetOrder(c.Request.Context(), cookieOf(c), c.Param("id"))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func updateOrder(c *gin.Context) {
	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Order.UpdateOrder(c.Request.Context(), cookieOf(c), c.Param("id"), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

func deleteOrder(c *gin.Context) {
	if err := gateway.clients.Order.DeleteOrder(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// --- Dashboards ---

func dashboardHome(c *gin.Context) {
	session := gate.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"navigation": nav.ForRole(session.Role),
	}})
}

func dashboardProfile(c *gin.Context) {
	session := gate.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"profile": gin.H{
			"id":    session.UserID,
			"name":  session.Name,
			"email": session.Email,
			"role":  session.Role,
		},
		"navigation": nav.ForRole(session.Role),
	}})
}

// --- Catalog management ---

func createMedicine(c *gin.Context) {
	var req models.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	medicine, err := gateway.clients.Medicine.Create(c.Request.Context(), cookieOf(c), req)
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": medicine})
}

func updateMedicine(c *gin.Context) {
	var req models.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Medicine.Update(c.Request.Context(), cookieOf(c), c.Param("id"), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine updated"})
}

func deleteMedicine(c *gin.Context) {
	if err := gateway.clients.Medicine.Delete(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
}

func createCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Category.Create(c.Request.Context(), cookieOf(c), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created"})
}

func updateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Category.Update(c.Request.Context(), cookieOf(c), c.Param("id"), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

func deleteCategory(c *gin.Context) {
	if err := gateway.clients.Category.Delete(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// --- User management ---

func listUsers(c *gin.Context) {
	users, err := gateway.clients.User.List(c.Request.Context(), cookieOf(c))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.Header("X-Cache-Version", versionHeader(cache.TagUser))
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func getUser(c *gin.Context) {
	user, err := gateway.clients.User.Get(c.Request.Context(), cookieOf(c), c.Param("id"))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func updateUserStatus(c *gin.Context) {
	var req models.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.User.UpdateStatus(c.Request.Context(), cookieOf(c), c.Param("id"), req.Status); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

func deleteUser(c *gin.Context) {
	if err := gateway.clients.User.Delete(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// --- Reviews ---

func listReviews(c *gin.Context) {
	reviews, err := gateway.clients.Review.ListForMedicine(c.Request.Context(), c.Query("medicineId"))
	if err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.Header("X-Cache-Version", versionHeader(cache.TagReview))
	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

func createReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Review.Create(c.Request.Context(), cookieOf(c), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review posted"})
}

func updateReview(c *gin.Context) {
	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := gateway.clients.Review.Update(c.Request.Context(), cookieOf(c), c.Param("id"), req); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated"})
}

func deleteReview(c *gin.Context) {
	if err := gateway.clients.Review.Delete(c.Request.Context(), cookieOf(c), c.Param("id")); err != nil {
		respondCollaboratorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func versionHeader(tag string) string {
	return strconv.FormatUint(gateway.tags.Version(tag), 10)
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
