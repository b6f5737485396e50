package router

import (
	"shulin/internal/handlers"
	"shulin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	categoryHandler := handlers.NewCategoryHandler()
	tagHandler := handlers.NewTagHandler()
	searchHandler := handlers.NewSearchHandler()
	aboutHandler := handlers.NewAboutHandler()
	treeHoleHandler := handlers.NewTreeHoleHandler()
	pageHandler := handlers.NewPageHandler()
	adminHandler := handlers.NewAdminHandler()
	seoHandler := handlers.NewSEOHandler()

	// 搜索接口限流：每个IP每分钟5次
	searchThrottle := middleware.NewThrottle(5.0/60.0, 5)

	// JSON 接口 (API Routes)
	api := r.Group("/api/v1")
	{
		api.GET("/posts", postHandler.List)                            // 文章列表
		api.GET("/posts/archive/dates", postHandler.ArchiveDates)      // 有文章的月份列表
		api.GET("/posts/archives", postHandler.Archives)               // 按月归档的文章
		api.GET("/posts/:id", postHandler.Retrieve)                    // 文章详情
		api.PUT("/posts/:id/like", postHandler.Like)                   // 文章点赞
		api.GET("/posts/:id/comments", postHandler.ListComments)       // 文章评论分页列表
		api.GET("/posts/:id/allcomments", postHandler.ListCommentsAll) // 文章全部评论(树状)

		api.POST("/comments", commentHandler.Create)             // 发表评论
		api.PUT("/comments/:id/like", commentHandler.Like)       // 评论点赞
		api.PUT("/comments/:id/dislike", commentHandler.Dislike) // 评论点踩

		api.GET("/categories", categoryHandler.List)               // 分类列表
		api.GET("/categories/count", categoryHandler.ListWithCount) // 分类列表(含文章数)
		api.GET("/tags", tagHandler.List)                          // 标签列表
		api.GET("/tags/count", tagHandler.ListWithCount)           // 标签列表(含文章数)

		api.GET("/search", searchThrottle.Handler(), searchHandler.Search) // 全文搜索

		api.GET("/about", aboutHandler.List)      // 关于页列表
		api.GET("/about/info", aboutHandler.Info) // 最新关于页

		api.GET("/treeholes", treeHoleHandler.List)                  // 树洞列表
		api.POST("/treeholes", treeHoleHandler.Create)               // 发树洞
		api.GET("/treeholes/alltreeholes", treeHoleHandler.ListAll) // 树洞树状归档
	}

	// 页面路由 (Page Routes)
	r.GET("/", pageHandler.Index)                               // 首页
	r.GET("/posts/:id", pageHandler.Detail)                     // 文章详情页
	r.POST("/posts/:id/comment", pageHandler.CreateComment)     // 页面发表评论
	r.GET("/categories/:id", pageHandler.Category)              // 分类下的文章
	r.GET("/tags/:id", pageHandler.Tag)                         // 标签下的文章
	r.GET("/archives/:year/:month", pageHandler.Archive)        // 月度归档页

	// 管理后台 (Admin Routes)
	r.GET("/admin/login", adminHandler.ShowLogin) // 登录页面
	r.POST("/admin/login", adminHandler.Login)    // 提交登录
	r.GET("/admin/logout", adminHandler.Logout)   // 退出登录

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/posts/new", adminHandler.ShowCreatePost) // 写文章页面
		admin.POST("/posts/new", adminHandler.CreatePost)    // 提交发布文章
	}

	// SEO 路由
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)
}
