package http

import (
	"github.com/gin-gonic/gin"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type RouterDeps struct {
	Collections      []Routes
	ExperienceImages *ExperienceImageHandler
	Auth             *AuthHandler
	Site             *SiteHandler
	RSS              *RSSHandler
	Contact          *ContactHandler
	Media            *MediaHandler
	Backup           *BackupHandler
	AdminGuard       gin.HandlerFunc
	Logger           logger.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(d.Logger), ErrorMiddleware(d.Logger))

	// Entry points of the admin area. Unauthenticated browsers hitting
	// /admin are redirected to /admin/login.
	router.GET(AdminLoginPath, d.Auth.Session)
	router.GET("/admin", d.AdminGuard, d.Site.Dashboard)

	api := router.Group("/api")
	{
		api.GET("/health", d.Site.Health)
		api.GET("/portfolio", d.Site.Portfolio)
		api.GET("/skills/grouped", d.Site.GroupedSkills)
		api.GET("/rss/projects", d.RSS.ProjectsRSS)
		api.POST("/contact", d.Contact.Submit)

		for _, c := range d.Collections {
			c.RegisterPublic(api)
		}

		authGroup := api.Group("/admin/auth")
		{
			authGroup.POST("/login", d.Auth.Login)
			authGroup.POST("/logout", d.Auth.Logout)
			authGroup.GET("/session", d.Auth.Session)
		}

		admin := api.Group("/admin")
		admin.Use(d.AdminGuard)
		{
			admin.GET("/dashboard", d.Site.Dashboard)
			admin.GET("/schemas", d.Site.Schemas)
			admin.POST("/media", d.Media.UploadMedia)
			admin.DELETE("/media/*public_id", d.Media.DeleteMedia)
			admin.POST("/backup", d.Backup.CreateBackup)

			for _, c := range d.Collections {
				c.RegisterAdmin(admin)
			}
			d.ExperienceImages.RegisterAdmin(admin)
		}
	}

	return router
}
