package handlers

import (
	"net/http"
	"time"

	"shulin/internal/db"
	"shulin/internal/dto"
	"shulin/internal/logger"
	"shulin/internal/models"
	"shulin/internal/tree"
	"shulin/internal/utils"

	"github.com/gin-gonic/gin"
)

type TreeHoleHandler struct{}

func NewTreeHoleHandler() *TreeHoleHandler {
	return &TreeHoleHandler{}
}

// List 树洞列表（平铺）
func (h *TreeHoleHandler) List(c *gin.Context) {
	var holes []models.TreeHole
	db.DB.Order("created_at ASC, id ASC").Find(&holes)
	c.JSON(http.StatusOK, dto.NewTreeHoleResponses(holes))
}

// Create 发布树洞，parent 可选
func (h *TreeHoleHandler) Create(c *gin.Context) {
	var req dto.CreateTreeHoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestJSON(c, err.Error())
		return
	}

	if req.Parent != nil {
		var parent models.TreeHole
		if err := db.DB.First(&parent, *req.Parent).Error; err != nil {
			BadRequestJSON(c, "parent tree hole does not exist")
			return
		}
	}

	hole := models.TreeHole{
		Content:  req.Content,
		ParentID: req.Parent,
	}
	if err := db.DB.Create(&hole).Error; err != nil {
		logger.S().Errorf("failed to create tree hole: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create tree hole"})
		return
	}

	utils.GetCache().TouchTreeHoles()

	c.JSON(http.StatusCreated, dto.NewTreeHoleResponse(hole))
}

// ListAll 全部树洞，树状结构，再按发布月份分组，月份新的在前
func (h *TreeHoleHandler) ListAll(c *gin.Context) {
	cacheKey := utils.GetCache().TreeHoleKey("all")
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if buckets, ok := cached.([]tree.MonthBucket[*dto.TreeHoleNode]); ok {
			c.JSON(http.StatusOK, buckets)
			return
		}
	}

	var holes []models.TreeHole
	db.DB.Order("created_at ASC, id ASC").Find(&holes)

	nodes := dto.NewTreeHoleNodes(holes)
	forest := tree.Build(nodes, maxCommentDepth(),
		func(n *dto.TreeHoleNode) uint { return n.ID },
		func(n *dto.TreeHoleNode) *uint { return n.ParentID },
		func(parent, child *dto.TreeHoleNode) { parent.Children = append(parent.Children, child) },
	)

	buckets := tree.BucketByMonth(forest, func(n *dto.TreeHoleNode) time.Time { return n.CreatedAt })

	utils.GetCache().Set(cacheKey, buckets, 5*time.Minute)

	c.JSON(http.StatusOK, buckets)
}
