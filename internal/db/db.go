package db

import (
	"os"

	"shulin/internal/logger"
	"shulin/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=shulin port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.S().Fatalf("Failed to connect to database: %v", err)
	}

	logger.S().Info("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.TreeHole{},
		&models.About{},
	)
	if err != nil {
		logger.S().Fatalf("Failed to migrate database: %v", err)
	}
	logger.S().Info("Database migration completed")

	seedAdmin()
	seedCategories()
}

// seedAdmin 依据 ADMIN_USER / ADMIN_PASSWORD 创建管理员账号
func seedAdmin() {
	username := os.Getenv("ADMIN_USER")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.S().Errorf("Failed to hash admin password: %v", err)
		return
	}
	if err := DB.Create(&models.User{Username: username, Password: string(hash)}).Error; err != nil {
		logger.S().Errorf("Failed to create admin user %s: %v", username, err)
		return
	}
	logger.S().Infof("Admin user %s created", username)
}

func seedCategories() {
	// 检查是否已有分类数据
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		logger.S().Debug("Categories already seeded, skipping")
		return
	}

	// 创建预设分类
	categories := []models.Category{
		{Name: "技术"},
		{Name: "生活"},
		{Name: "随笔"},
	}

	for _, cate := range categories {
		if err := DB.Create(&cate).Error; err != nil {
			logger.S().Errorf("Failed to create category %s: %v", cate.Name, err)
		}
	}
	logger.S().Info("Initial categories created successfully")
}
