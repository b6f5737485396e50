package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"shulin/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache 全局本地缓存封装。
// 除了普通的 TTL 条目，还维护 post / comment / treehole 三个"最后变更时间"位，
// 写路径通过 Touch* 显式发出失效信号，读路径把对应时间戳拼进缓存 key，
// 数据一变 key 就变，旧条目自然被 LRU 淘汰。
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]

	postBit     atomic.Int64
	commentBit  atomic.Int64
	treeHoleBit atomic.Int64
}

var cacheInstance *GlobalCache

// GetCache 获取单例缓存实例
func GetCache() *GlobalCache {
	if cacheInstance == nil {
		// 创建一个容量为 500 的 LRU 缓存
		l, err := lru.New[string, CacheItem](500)
		if err != nil {
			logger.S().Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{lruCache: l}
		now := time.Now().UnixNano()
		cacheInstance.postBit.Store(now)
		cacheInstance.commentBit.Store(now)
		cacheInstance.treeHoleBit.Store(now)
	}
	return cacheInstance
}

// Set 设置缓存，TTL 为过期时间
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// TouchPosts 文章写路径调用，旧的文章类缓存 key 即刻失效
func (c *GlobalCache) TouchPosts() {
	c.postBit.Store(time.Now().UnixNano())
}

// TouchComments 评论写路径调用
func (c *GlobalCache) TouchComments() {
	c.commentBit.Store(time.Now().UnixNano())
}

// TouchTreeHoles 树洞写路径调用
func (c *GlobalCache) TouchTreeHoles() {
	c.treeHoleBit.Store(time.Now().UnixNano())
}

// PostKey 构造带文章变更位的缓存 key
func (c *GlobalCache) PostKey(parts string) string {
	return fmt.Sprintf("post:%s:%d", parts, c.postBit.Load())
}

// CommentKey 构造带评论变更位的缓存 key
func (c *GlobalCache) CommentKey(parts string) string {
	return fmt.Sprintf("comment:%s:%d", parts, c.commentBit.Load())
}

// TreeHoleKey 构造带树洞变更位的缓存 key
func (c *GlobalCache) TreeHoleKey(parts string) string {
	return fmt.Sprintf("treehole:%s:%d", parts, c.treeHoleBit.Load())
}
