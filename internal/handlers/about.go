package handlers

import (
	"net/http"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/models"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
)

type AboutHandler struct{}

func NewAboutHandler() *AboutHandler {
	return &AboutHandler{}
}

// List 关于页列表
func (h *AboutHandler) List(c *gin.Context) {
	var abouts []models.About
	db.DB.Order("created_at ASC").Find(&abouts)

	out := make([]dto.AboutResponse, 0, len(abouts))
	for _, a := range abouts {
		out = append(out, dto.NewAboutResponse(a, string(utils.RenderMarkdown(a.Body))))
	}
	c.JSON(http.StatusOK, out)
}

// Info 最新一条关于页内容
func (h *AboutHandler) Info(c *gin.Context) {
	var about models.About
	if err := db.DB.Order("created_at DESC").First(&about).Error; err != nil {
		NotFoundJSON(c)
		return
	}
	c.JSON(http.StatusOK, dto.NewAboutResponse(about, string(utils.RenderMarkdown(about.Body))))
}
