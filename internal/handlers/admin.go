package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"shulin/internal/db"
	"shulin/internal/logger"
	"shulin/internal/middleware"
	"shulin/internal/models"
	"shulin/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler 后台管理：登录和写文章
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// ShowLogin 登录页
func (h *AdminHandler) ShowLogin(c *gin.Context) {
	// 已登录直接跳转后台
	if user, _ := c.Get(middleware.CheckUserKey); user != nil {
		c.Redirect(http.StatusFound, "/admin/posts/new")
		return
	}
	Render(c, http.StatusOK, "admin/login.html", gin.H{"Title": "登录"})
}

// Login 处理登录表单
func (h *AdminHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		Flash(c, "用户名或密码错误！")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		logger.S().Errorw("保存会话失败", "error", err)
		RenderError(c, http.StatusInternalServerError, "登录失败，请稍后重试")
		return
	}

	c.Redirect(http.StatusFound, "/admin/posts/new")
}

// Logout 退出登录
func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete("user_id")
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

// ShowCreatePost 写文章页
func (h *AdminHandler) ShowCreatePost(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("name ASC").Find(&categories)
	var tags []models.Tag
	db.DB.Order("name ASC").Find(&tags)

	Render(c, http.StatusOK, "admin/post_form.html", gin.H{
		"Title":      "写文章",
		"Categories": categories,
		"Tags":       tags,
	})
}

// CreatePost 处理发布文章表单
func (h *AdminHandler) CreatePost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	body := c.PostForm("body")
	excerpt := strings.TrimSpace(c.PostForm("excerpt"))
	categoryID := utils.StringToInt(c.PostForm("category_id"))

	if title == "" || body == "" || categoryID < 1 {
		Flash(c, "发布失败！标题、正文和分类不能为空。")
		c.Redirect(http.StatusFound, "/admin/posts/new")
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		Flash(c, "发布失败！分类不存在。")
		c.Redirect(http.StatusFound, "/admin/posts/new")
		return
	}

	// 摘要为空时从正文自动截取
	if excerpt == "" {
		excerpt = utils.Excerpt(body, 54)
	}

	userVal, _ := c.Get(middleware.CheckUserKey)
	author, ok := userVal.(*models.User)
	if !ok {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	post := models.Post{
		Title:      title,
		Body:       body,
		Excerpt:    excerpt,
		CategoryID: category.ID,
		AuthorID:   author.ID,
	}

	// 标签：已有的直接挂上，没有的现场新建。中英文逗号都认
	tagNames := strings.FieldsFunc(c.PostForm("tags"), func(r rune) bool {
		return r == ',' || r == '，'
	})
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := db.DB.Where("name = ?", name).First(&tag).Error; err != nil {
			tag = models.Tag{Name: name}
			if err := db.DB.Create(&tag).Error; err != nil {
				logger.S().Errorw("创建标签失败", "name", name, "error", err)
				continue
			}
		}
		post.Tags = append(post.Tags, tag)
	}

	if err := db.DB.Create(&post).Error; err != nil {
		logger.S().Errorw("发布文章失败", "title", title, "error", err)
		Flash(c, "发布失败！请稍后重试。")
		c.Redirect(http.StatusFound, "/admin/posts/new")
		return
	}

	utils.GetCache().TouchPosts()

	Flash(c, "文章发布成功！")
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}
