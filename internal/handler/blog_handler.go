package handler

import (
	"net/http"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	svc *service.BlogService
}

type BlogReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

// List 公开接口，所有博客
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.svc.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *BlogHandler) MyBlogs(c *gin.Context) {
	blogs, err := h.svc.MyBlogs(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// Create 创建博客，作者取当前登录用户
func (h *BlogHandler) Create(c *gin.Context) {
	var req BlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	blog, err := h.svc.Create(currentUserID(c), req.Title, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// Update 仅作者或管理员
func (h *BlogHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req BlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	blog, err := h.svc.Update(currentUserID(c), id, req.Title, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// Delete 仅作者或管理员
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.svc.Delete(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "blog removed"})
}
