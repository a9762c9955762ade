package routes

import (
	adminapi "marketplace-app/internal/api/admin"
	authapi "marketplace-app/internal/api/auth"
	designersapi "marketplace-app/internal/api/designers"
	usersapi "marketplace-app/internal/api/users"
	videosapi "marketplace-app/internal/api/videos"
	"marketplace-app/internal/app/http/middleware"
	"marketplace-app/internal/media"
	"marketplace-app/internal/store"
	"marketplace-app/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Store    store.Store
	Engine   *workflow.Engine
	Uploader media.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	authH := authapi.NewHandler(deps.DB)
	usersH := usersapi.NewHandler(deps.Store)
	designersH := designersapi.NewHandler(deps.Store, deps.Engine, deps.Uploader)
	videosH := videosapi.NewHandler(deps.Store, deps.Engine)
	adminH := adminapi.NewHandler(deps.DB)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authH.Register)
	public.POST("/login", authH.Login)
	public.GET("/verify", authH.VerifyEmail)

	public.GET("/auth/google", authH.GoogleStart)
	public.GET("/auth/google/callback", authH.GoogleCallback)

	public.GET("/designers", designersH.ListDesigners)
	public.GET("/designers/:designerId", designersH.GetDesigner)
	public.GET("/videos", videosH.ListVideos)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersH.GetCurrentUser)
	auth.POST("/change-password", authH.ChangePassword)

	auth.POST("/designers", designersH.CreateDesigner)
	auth.POST("/designers/:designerId/update-request", designersH.SubmitUpdateRequest)

	auth.POST("/videos", videosH.AddVideo)
	auth.POST("/videos/creator-request", videosH.SubmitCreatorRequest)
	auth.POST("/videos/:videoId/like", videosH.ToggleLike)
	auth.POST("/videos/:videoId/comments", videosH.AddComment)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/admin/dashboard", adminH.Dashboard)
	admin.GET("/admin/users", adminH.ListAllUsers)
	admin.GET("/admin/user/:id", adminH.GetUserDetails)

	admin.PATCH("/designers/:designerId/status", designersH.SetApprovalStatus)
	admin.DELETE("/designers/:designerId", designersH.DeleteDesigner)
	admin.PUT("/designers/review/:requestId", designersH.ReviewUpdateRequest)
	admin.GET("/designers/update-requests/latest", designersH.LatestUpdateRequests)

	admin.PUT("/videos/review/:videoId", videosH.ReviewCreatorRequest)
	admin.PATCH("/videos/:videoId/approval", videosH.ToggleApproval)
}
