package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendahub/agenda-api/internal/cache"
)

type CacheHandler struct {
	cache *cache.Cache
}

func NewCacheHandler(slotCache *cache.Cache) *CacheHandler {
	return &CacheHandler{cache: slotCache}
}

func (h *CacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.GetStats())
}
