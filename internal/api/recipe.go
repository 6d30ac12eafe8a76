package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david485-rev/RecipeExplorer/internal/middleware"
	"github.com/david485-rev/RecipeExplorer/internal/service"
)

// RecipeHandler exposes recipe CRUD with owner-only edit and delete.
type RecipeHandler struct {
	recipes *service.RecipeService
	tokens  *service.TokenService
	limiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, tokens *service.TokenService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		tokens:  tokens,
		limiter: limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", middleware.Auth(h.tokens), h.limiter.Middleware(), h.Create)
		recipes.PUT("", middleware.Auth(h.tokens), h.Edit)
		recipes.DELETE("/:uuid", middleware.Auth(h.tokens), h.Remove)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	var filterKey, filterValue string
	for key, values := range c.Request.URL.Query() {
		filterKey = key
		if len(values) > 0 {
			filterValue = values[0]
		}
		break
	}

	items, err := h.recipes.List(c.Request.Context(), filterKey, filterValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": items})
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), recipeInput(req), middleware.CallerUUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Edit(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	recipe, err := h.recipes.Edit(c.Request.Context(), recipeInput(req), middleware.CallerUUID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Remove(c *gin.Context) {
	if err := h.recipes.Remove(c.Request.Context(), c.Param("uuid"), middleware.CallerUUID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func recipeInput(req RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		UUID:         req.UUID,
		RecipeThumb:  req.RecipeThumb,
		RecipeName:   req.RecipeName,
		Category:     req.Category,
		Cuisine:      req.Cuisine,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}
}
