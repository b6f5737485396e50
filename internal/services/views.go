package services

import (
	"sync"
	"time"

	"shulin/internal/db"
	"shulin/internal/logger"
	"shulin/internal/models"

	"gorm.io/gorm"
)

// ViewService 异步累加文章阅读量，避免每次读请求都写库
type ViewService struct {
	queue chan uint // 待累加的文章 ID 队列
}

var (
	viewService *ViewService
	once        sync.Once
)

// GetViewService 获取单例阅读量服务
func GetViewService() *ViewService {
	once.Do(func() {
		viewService = &ViewService{
			queue: make(chan uint, 1000), // 缓冲队列，防止阻塞
		}
		// 启动后台 worker
		go viewService.worker()
	})
	return viewService
}

// Increase 把一次阅读放进队列（异步）
func (s *ViewService) Increase(postID uint) {
	// 非阻塞发送到队列
	select {
	case s.queue <- postID:
	default:
		// 队列满了，丢一次阅读量无伤大雅
		logger.S().Warnf("view counter queue full, dropping view for post %d", postID)
	}
}

// worker 后台批量处理队列中的阅读量
func (s *ViewService) worker() {
	batch := make(map[uint]int, 50)
	ticker := time.NewTicker(500 * time.Millisecond) // 每 500ms 刷一批
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch[postID]++
			if len(batch) >= 50 {
				s.flush(batch)
				batch = make(map[uint]int, 50)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = make(map[uint]int, 50)
			}
		}
	}
}

// flush 把累计的阅读量写回数据库
func (s *ViewService) flush(batch map[uint]int) {
	for postID, n := range batch {
		err := db.DB.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("views", gorm.Expr("views + ?", n)).Error
		if err != nil {
			logger.S().Errorf("failed to flush %d views for post %d: %v", n, postID, err)
		}
	}
}
