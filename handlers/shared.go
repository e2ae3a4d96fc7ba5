// Package handlers exposes the HTTP surface over the marketplace
// repositories. Handlers bind and validate request payloads, delegate to
// the repository layer, and render entities through their wire maps.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prbal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads ?page= and ?page_size= with sane bounds.
func pageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// invalidateEntity drops a cached snapshot after a write.
func invalidateEntity(c *gin.Context, key string) {
	if err := utils.GetCacheClient().Del(c.Request.Context(), key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate cache entry", zap.String("key", key), zap.Error(err))
	}
}
