package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := GetCache()
	c.Set("k", "v", time.Minute)
	if got := c.Get("k"); got != "v" {
		t.Errorf("expected v, got %v", got)
	}
	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()
	c.Set("short", 1, -time.Second)
	if got := c.Get("short"); got != nil {
		t.Errorf("expected expired entry to be nil, got %v", got)
	}
}

func TestTouchChangesKeys(t *testing.T) {
	c := GetCache()

	k1 := c.PostKey("list:page=1")
	c.Set(k1, "cached", time.Minute)

	c.TouchPosts()
	k2 := c.PostKey("list:page=1")
	if k1 == k2 {
		t.Fatal("post key should change after TouchPosts")
	}
	if got := c.Get(k2); got != nil {
		t.Errorf("new key must miss after invalidation, got %v", got)
	}

	ck := c.CommentKey("post:5")
	c.TouchComments()
	if ck == c.CommentKey("post:5") {
		t.Error("comment key should change after TouchComments")
	}

	tk := c.TreeHoleKey("all")
	c.TouchTreeHoles()
	if tk == c.TreeHoleKey("all") {
		t.Error("treehole key should change after TouchTreeHoles")
	}
}
