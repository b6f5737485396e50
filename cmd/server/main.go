package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shulin/internal/db"
	"shulin/internal/logger"
	"shulin/internal/middleware"
	"shulin/internal/router"
	"shulin/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Logger
	logger.Init()
	defer logger.L().Sync()

	// Initialize Database
	db.Init()

	// 初始化异步阅读量服务
	services.GetViewService()

	// Initialize Gin
	r := gin.Default()

	// CORS：前端单独部署时通过 CORS_ORIGINS 放行
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	r.Use(cors.New(corsConfig))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("shulin_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("ShuLin server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"dateFormat": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%d秒前", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%d分钟前", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%d小时前", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%d天前", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%d个月前", seconds/2592000)
			}
			return fmt.Sprintf("%d年前", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("blog/index.html", funcMap, assemble(templatesDir+"/views/blog/index.html")...)
	r.AddFromFilesFuncs("blog/detail.html", funcMap, assemble(templatesDir+"/views/blog/detail.html")...)
	r.AddFromFilesFuncs("admin/login.html", funcMap, assemble(templatesDir+"/views/admin/login.html")...)
	r.AddFromFilesFuncs("admin/post_form.html", funcMap, assemble(templatesDir+"/views/admin/post_form.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
