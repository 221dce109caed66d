package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
	"github.com/simpleblog/backend/internal/template"
	"github.com/sirupsen/logrus"
)

const postFormError = "Title and content are both required."

// AdminHandler serves the gated post management pages.
type AdminHandler struct {
	svc *service.PostService
	log logrus.FieldLogger
}

func NewAdminHandler(svc *service.PostService, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	posts, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		renderFailure(c, h.log, err)
		return
	}

	page := template.NewPage("Dashboard", "/dashboard")
	page.Posts = posts
	c.HTML(http.StatusOK, "dashboard.html", page)
}

func (h *AdminHandler) AddPostPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add-post.html", template.NewPage("Add Post", "/add-post"))
}

func (h *AdminHandler) CreatePost(c *gin.Context) {
	var req model.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderAddForm(c, req)
		return
	}

	post, err := h.svc.Create(c.Request.Context(), GetAuthUser(c), req.Title, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.renderAddForm(c, req)
			return
		}
		renderFailure(c, h.log, err)
		return
	}

	requestLog(c, h.log).WithField("post_id", post.ID).Info("post created")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AdminHandler) EditPostPage(c *gin.Context) {
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

	page := template.NewPage("Edit Post", c.Request.URL.Path)
	page.Post = post
	c.HTML(http.StatusOK, "edit-post.html", page)
}

// UpdatePost answers PUT and form POST. A missing post is logged and
// rendered as 404 rather than redirected.
func (h *AdminHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	var req model.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderEditForm(c, id, req)
		return
	}

	_, err := h.svc.Update(c.Request.Context(), GetAuthUser(c), id, req.Title, req.Body)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit-post/%d", id))
	case errors.Is(err, service.ErrInvalidInput):
		h.renderEditForm(c, id, req)
	case errors.Is(err, service.ErrNotFound):
		requestLog(c, h.log).WithField("post_id", id).Warn("update of missing post")
		renderNotFound(c)
	default:
		renderFailure(c, h.log, err)
	}
}

// DeletePost answers DELETE and form POST. Unknown ids are a no-op.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), GetAuthUser(c), id); err != nil {
		renderFailure(c, h.log, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AdminHandler) renderAddForm(c *gin.Context, req model.PostRequest) {
	page := template.NewPage("Add Post", "/add-post")
	page.Form = req
	page.Error = postFormError
	c.HTML(http.StatusBadRequest, "add-post.html", page)
}

func (h *AdminHandler) renderEditForm(c *gin.Context, id int64, req model.PostRequest) {
	page := template.NewPage("Edit Post", c.Request.URL.Path)
	page.Post = &model.Post{ID: id, Title: req.Title, Body: req.Body}
	page.Error = postFormError
	c.HTML(http.StatusBadRequest, "edit-post.html", page)
}
