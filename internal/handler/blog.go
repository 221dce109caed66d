package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
	"github.com/simpleblog/backend/internal/template"
	"github.com/sirupsen/logrus"
)

// BlogHandler serves the public pages.
type BlogHandler struct {
	svc *service.PostService
	log logrus.FieldLogger
}

func NewBlogHandler(svc *service.PostService, log logrus.FieldLogger) *BlogHandler {
	return &BlogHandler{svc: svc, log: log}
}

func (h *BlogHandler) Index(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), parsePage(c.Query("page")), h.svc.PageSize())
	if err != nil {
		renderFailure(c, h.log, err)
		return
	}

	page := template.NewPage("Simple Blog", "/")
	page.Posts = result.Items
	page.Current = result.Page
	page.NextPage = result.NextPage()
	c.HTML(http.StatusOK, "index.html", page)
}

func (h *BlogHandler) Post(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		renderFailure(c, h.log, err)
		return
	}

	page := template.NewPage(post.Title, c.Request.URL.Path)
	page.Post = post
	c.HTML(http.StatusOK, "post.html", page)
}

func (h *BlogHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		renderFailure(c, h.log, service.ErrInvalidInput)
		return
	}

	posts, err := h.svc.Search(c.Request.Context(), req.SearchTerm)
	if err != nil {
		renderFailure(c, h.log, err)
		return
	}

	page := template.NewPage("Search", "/search")
	page.Posts = posts
	page.SearchTerm = req.SearchTerm
	c.HTML(http.StatusOK, "search.html", page)
}

func (h *BlogHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", template.NewPage("About", "/about"))
}

func (h *BlogHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", template.NewPage("Contact", "/contact"))
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	renderNotFound(c)
}
