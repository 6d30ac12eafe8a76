package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david485-rev/RecipeExplorer/internal/middleware"
	"github.com/david485-rev/RecipeExplorer/internal/service"
)

// Services bundles the domain services consumed by the HTTP layer.
type Services struct {
	Users    *service.UserService
	Recipes  *service.RecipeService
	Comments *service.CommentService
	General  *service.GeneralService
	Tokens   *service.TokenService
}

// HealthCheck reports API liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "RecipeExplorer API is running",
	})
}

// RegisterRoutes wires all handlers onto the router. limiter may wrap a nil
// Redis client, in which case write endpoints are not rate limited.
func RegisterRoutes(router *gin.Engine, svc *Services, limiter *middleware.RateLimiter) {
	router.GET("/health", HealthCheck)

	NewUserHandler(svc.Users, svc.Tokens).RegisterRoutes(&router.RouterGroup)
	NewRecipeHandler(svc.Recipes, svc.Tokens, limiter).RegisterRoutes(&router.RouterGroup)
	NewCommentHandler(svc.Comments, svc.General, svc.Tokens, limiter).RegisterRoutes(&router.RouterGroup)

	// Generic fetch-by-id fallback for any entity kind.
	itemHandler := NewItemHandler(svc.General)
	router.GET("/:uuid", itemHandler.Get)
}

// respondError maps a domain failure to its HTTP status, carrying the
// failure's literal message.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"message": err.Error()})
}

func statusFor(err error) int {
	switch service.KindOf(err) {
	case service.KindMissingField, service.KindInvalidValue,
		service.KindAlreadyExists, service.KindDuplicateReview:
		return http.StatusBadRequest
	case service.KindInvalidCredential:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
