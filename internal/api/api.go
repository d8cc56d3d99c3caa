package api

import (
	"net/http"

	authHandler "review-server/internal/auth/handler"
	billingHandler "review-server/internal/billing/handler"
	branchHandler "review-server/internal/branches/handler"
	mailingHandler "review-server/internal/mailing/handler"
	quotaHandler "review-server/internal/quota/handler"
	reviewHandler "review-server/internal/reviews/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router         *gin.RouterGroup
	authHandler    authHandler.Handler
	reviewHandler  reviewHandler.Handler
	branchHandler  branchHandler.Handler
	mailingHandler mailingHandler.Handler
	quotaHandler   quotaHandler.Handler
	billingHandler billingHandler.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	reviewHandler reviewHandler.Handler,
	branchHandler branchHandler.Handler,
	mailingHandler mailingHandler.Handler,
	quotaHandler quotaHandler.Handler,
	billingHandler billingHandler.Handler,
) API {
	return API{
		router:         router,
		authHandler:    authHandler,
		reviewHandler:  reviewHandler,
		branchHandler:  branchHandler,
		mailingHandler: mailingHandler,
		quotaHandler:   quotaHandler,
		billingHandler: billingHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/reviews/:token", a.reviewHandler.HandleSubmitByToken)
		apiGroup.GET("/offline/validate/:token", a.branchHandler.HandleValidateToken)
	}
	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	{
		protectedGroup.GET("/reviews", a.reviewHandler.HandleListReviews)
		protectedGroup.POST("/reviews", a.reviewHandler.HandleSubmitManual)
		protectedGroup.POST("/reviews/:review_id/reply", a.reviewHandler.HandleReply)

		protectedGroup.GET("/usage", a.quotaHandler.HandleGetUsage)

		protectedGroup.GET("/branches", a.branchHandler.HandleListBranches)
		protectedGroup.POST("/branches", a.branchHandler.HandleCreateBranch)
		protectedGroup.PUT("/branches/:branch_id", a.branchHandler.HandleUpdateBranch)
		protectedGroup.DELETE("/branches/:branch_id", a.branchHandler.HandleDeleteBranch)
		protectedGroup.GET("/branches/:branch_id/reviews", a.branchHandler.HandleListBranchReviews)

		protectedGroup.POST("/mailings", a.mailingHandler.HandleCreateCampaign)
		protectedGroup.GET("/mailings/:campaign_id", a.mailingHandler.HandleGetCampaign)
	}
	apiGroup.POST("/billing/webhook", a.billingHandler.HandleWebhook)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
