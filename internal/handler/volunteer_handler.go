package handler

import (
	"net/http"

	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type VolunteerHandler struct {
	svc *service.VolunteerService
}

type VolunteerCreateReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type VolunteerRespondReq struct {
	Status          string `json:"status" binding:"required"`
	ResponseMessage string `json:"responseMessage"`
}

func NewVolunteerHandler(svc *service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

// Create 提交志愿者申请，14 天后自动过期
func (h *VolunteerHandler) Create(c *gin.Context) {
	var req VolunteerCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	vr, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.Title, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, vr)
}

func (h *VolunteerHandler) MyRequests(c *gin.Context) {
	list, err := h.svc.MyRequests(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListAll 管理员列表，支持 ?status= 过滤
func (h *VolunteerHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Respond 管理员处理申请
func (h *VolunteerHandler) Respond(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req VolunteerRespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	vr, err := h.svc.Respond(c.Request.Context(), id, req.Status, req.ResponseMessage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vr)
}

// Get 本人或管理员查看单条申请
func (h *VolunteerHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	vr, err := h.svc.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vr)
}
