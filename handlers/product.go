package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"prbal/database/repository"
	"prbal/models"
	"prbal/utils"
)

type ProductHandler struct {
	Repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

// CreateProductHandler handles POST /api/products/.
func (h *ProductHandler) CreateProductHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	m := req.ToMap()
	m["id"] = uuid.New().String()
	m["status"] = models.ProductStatusDraft.Value()
	m["created_at"] = now
	m["updated_at"] = now

	product, err := models.ProductFromMap(m)
	if err != nil {
		logger.Error("Failed to build product", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), product); err != nil {
		logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProductHandler handles GET /api/products/:id.
func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	key := "product:" + id

	if m, err := utils.CachedEntityMap(c.Request.Context(), key); err == nil {
		if product, err := models.ProductFromMap(m); err == nil {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Product not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := utils.CacheEntity(c.Request.Context(), key, product, utils.EntityCacheTTL); err != nil {
		logger.Warn("Failed to cache product", zap.String("id", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProductHandler handles PATCH /api/products/:id. The payload is a
// sparse wire map; only the keys it carries change.
func (h *ProductHandler) UpdateProductHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	m := existing.ToMap()
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		m[k] = v
	}
	m["updated_at"] = time.Now().UTC()

	product, err := models.ProductFromMap(m)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.Update(c.Request.Context(), product); err != nil {
		logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "product:"+id)
	c.JSON(http.StatusOK, product)
}

// DeleteProductHandler handles DELETE /api/products/:id.
func (h *ProductHandler) DeleteProductHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "product:"+id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ListProductsHandler handles GET /api/products/. Supports ?status=,
// ?product_type= and ?featured= filters; pass ?include_analytics=true for
// the dashboard summary.
func (h *ProductHandler) ListProductsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	page, pageSize := pageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = models.ParseProductStatus(status).Value()
	}
	if pt := c.Query("product_type"); pt != "" {
		filter["product_type"] = models.ParseProductType(pt).Value()
	}
	if c.Query("featured") == "true" {
		filter["is_featured"] = true
	}

	resp, err := h.Repo.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := resp.ToMap()
	if c.Query("include_analytics") == "true" {
		body["analytics"] = resp.Analytics()
	}
	c.JSON(http.StatusOK, body)
}
