package handlers

import (
	"net/http"

	"shulin/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user' and flash messages
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}

	// 取出一次性提示消息
	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		obj["Messages"] = flashes
		_ = session.Save()
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// Flash 写入一条一次性提示消息
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// NotFoundJSON 按接口惯例返回 {"detail": "Not found."}
func NotFoundJSON(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// BadRequestJSON 返回带说明的 400
func BadRequestJSON(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}
