package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pedidos-service/internal/realtime"
	"pedidos-service/internal/service"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService    *service.OrderService
	catalogService  *service.CatalogService
	instanceService *service.InstanceService
	hub             *realtime.Hub
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orderService *service.OrderService,
	catalogService *service.CatalogService,
	instanceService *service.InstanceService,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		orderService:    orderService,
		catalogService:  catalogService,
		instanceService: instanceService,
		hub:             hub,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/products/", h.createProduct)
	router.GET("/products/:user_id", h.listProducts)
	router.PUT("/products/:product_id", h.updateProduct)

	router.POST("/orders/:user_id", h.createOrder)
	router.GET("/orders/:user_id", h.listOrders)
	router.PUT("/orders/:order_id", h.updateOrder)

	router.POST("/instance_user/", h.createInstance)
	router.GET("/instance_user/:user_id", h.listInstances)
	router.PUT("/instance_user/:instance_id", h.updateInstance)

	router.GET("/ws", h.realtimeChannel)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// realtimeChannel upgrades the request to the websocket push channel.
func (h *Handler) realtimeChannel(c *gin.Context) {
	realtime.ServeWS(h.hub, c.Writer, c.Request)
}

// createProduct handles POST /products/
func (h *Handler) createProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		serverError(c, "Failed to create product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// listProducts handles GET /products/{user_id}
func (h *Handler) listProducts(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), userID)
	if err != nil {
		serverError(c, "Failed to list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// updateProduct handles PUT /products/{product_id}
func (h *Handler) updateProduct(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Producto no encontrado")
			return
		}
		serverError(c, "Failed to update product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createOrder handles POST /orders/{user_id}
func (h *Handler) createOrder(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	snapshot, err := h.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		serverError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// listOrders handles GET /orders/{user_id}
func (h *Handler) listOrders(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	snapshots, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		serverError(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// updateOrder handles PUT /orders/{order_id}
func (h *Handler) updateOrder(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	snapshot, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Pedido no encontrado")
			return
		}
		serverError(c, "Failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// createInstance handles POST /instance_user/
func (h *Handler) createInstance(c *gin.Context) {
	var req service.InstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	instance, err := h.instanceService.CreateInstance(c.Request.Context(), &req)
	if err != nil {
		serverError(c, "Failed to create instance", err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

// listInstances handles GET /instance_user/{user_id}
func (h *Handler) listInstances(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	instances, err := h.instanceService.ListInstances(c.Request.Context(), userID)
	if err != nil {
		serverError(c, "Failed to list instances", err)
		return
	}
	c.JSON(http.StatusOK, instances)
}

// updateInstance handles PUT /instance_user/{instance_id}
func (h *Handler) updateInstance(c *gin.Context) {
	instanceID, ok := pathID(c, "instance_id")
	if !ok {
		return
	}

	var req service.InstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	instance, err := h.instanceService.UpdateInstance(c.Request.Context(), instanceID, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Instancia no encontrada")
			return
		}
		serverError(c, "Failed to update instance", err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

func notFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detail})
}

func serverError(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   msg,
		"details": err.Error(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
