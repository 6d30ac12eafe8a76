package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david485-rev/RecipeExplorer/internal/middleware"
	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/service"
)

// CommentHandler exposes comment CRUD scoped by recipe.
type CommentHandler struct {
	comments *service.CommentService
	general  *service.GeneralService
	tokens   *service.TokenService
	limiter  *middleware.RateLimiter
}

func NewCommentHandler(comments *service.CommentService, general *service.GeneralService, tokens *service.TokenService, limiter *middleware.RateLimiter) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		general:  general,
		tokens:   tokens,
		limiter:  limiter,
	}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.POST("", middleware.Auth(h.tokens), h.limiter.Middleware(), h.Post)
		comments.GET("/recipe/:recipeUuid", h.ForRecipe)
		comments.GET("/:uuid", h.Get)
		comments.PUT("/:uuid", middleware.Auth(h.tokens), h.Edit)
		comments.DELETE("/:uuid", middleware.Auth(h.tokens), h.Remove)
	}
}

func (h *CommentHandler) Post(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	rating, ok := ratingValue(req.Rating)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating is not of type number"})
		return
	}

	comment, err := h.comments.Post(c.Request.Context(), middleware.CallerUUID(c), service.CommentInput{
		RecipeUUID:  req.RecipeUUID,
		Description: req.Description,
		Rating:      rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment successfully created",
		"comment": comment,
	})
}

func (h *CommentHandler) ForRecipe(c *gin.Context) {
	items, err := h.comments.ForRecipe(c.Request.Context(), c.Param("recipeUuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": items})
}

func (h *CommentHandler) Get(c *gin.Context) {
	item, err := h.general.GetDatabaseItem(c.Request.Context(), c.Param("uuid"))
	if err != nil || item.Type() != models.TypeComment {
		c.JSON(http.StatusNotFound, gin.H{"message": "no comment found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CommentHandler) Edit(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	rating, ok := ratingValue(req.Rating)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating is not of type number"})
		return
	}

	updated, err := h.comments.Edit(c.Request.Context(), c.Param("uuid"), middleware.CallerUUID(c), service.CommentInput{
		Description: req.Description,
		Rating:      rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CommentHandler) Remove(c *gin.Context) {
	if err := h.comments.Remove(c.Request.Context(), c.Param("uuid"), middleware.CallerUUID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
