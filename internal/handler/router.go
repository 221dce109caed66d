package handler

import (
	htmltemplate "html/template"

	"github.com/gin-gonic/gin"
	"github.com/simpleblog/backend/internal/service"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Logger    logrus.FieldLogger
	Templates *htmltemplate.Template
	Auth      *service.AuthService
	Posts     *service.PostService
	Store     Pinger
}

// NewRouter wires every route. Admin routes sit behind AuthMiddleware;
// login, registration and logout do not.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(cfg.Templates)
	r.Use(RequestID(), RequestLogger(cfg.Logger), Recovery(cfg.Logger), SecurityHeaders())

	health := NewHealthHandler(cfg.Store)
	blog := NewBlogHandler(cfg.Posts, cfg.Logger)
	auth := NewAuthHandler(cfg.Auth, cfg.Logger)
	admin := NewAdminHandler(cfg.Posts, cfg.Logger)

	r.GET("/ping", health.Ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/openapi.json", OpenAPIDoc)

	r.GET("/", blog.Index)
	r.GET("/post/:id", blog.Post)
	r.POST("/search", blog.Search)
	r.GET("/about", blog.About)
	r.GET("/contact", blog.Contact)

	r.GET("/admin", auth.LoginPage)
	r.POST("/admin", auth.Login)
	r.GET("/register", auth.RegisterPage)
	r.POST("/register", auth.Register)
	r.GET("/logout", auth.Logout)

	gated := r.Group("/", AuthMiddleware(cfg.Auth))
	gated.GET("/dashboard", admin.Dashboard)
	gated.GET("/add-post", admin.AddPostPage)
	gated.POST("/add-post", admin.CreatePost)
	gated.GET("/edit-post/:id", admin.EditPostPage)
	gated.PUT("/edit-post/:id", admin.UpdatePost)
	gated.POST("/edit-post/:id", admin.UpdatePost)
	gated.DELETE("/delete-post/:id", admin.DeletePost)
	gated.POST("/delete-post/:id", admin.DeletePost)

	r.NoRoute(blog.NotFound)

	return r
}
