package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david485-rev/RecipeExplorer/internal/service"
)

// ItemHandler serves the generic get-by-id capability. Items come back with
// the password attribute already redacted.
type ItemHandler struct {
	general *service.GeneralService
}

func NewItemHandler(general *service.GeneralService) *ItemHandler {
	return &ItemHandler{general: general}
}

func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.general.GetDatabaseItem(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if service.KindOf(err) == service.KindNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "error finding resource"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "error finding resource"})
		return
	}
	c.JSON(http.StatusOK, item)
}
