// Package tree 把平铺的自关联记录（评论、树洞）物化成嵌套的森林结构
package tree

import (
	"encoding/json"
	"sort"
	"time"
)

// Build 将按序排列的平铺记录组装成森林，返回按输入顺序排列的根节点。
//
// 记录之间通过 id / parent_id 自关联。parent_id 为 nil 的记录是根节点；
// parent_id 指向不存在记录的（悬空引用）同样按根节点处理，而不是丢弃或死循环。
// 子节点按输入顺序追加到父节点下，输入中的每条记录在输出中恰好出现一次。
//
// maxDepth 限制嵌套层级（根节点为第 1 层），超出的记录会挂到
// 允许的最深祖先之下；0 表示不限制。
func Build[N any](items []N, maxDepth int, id func(N) uint, parentID func(N) *uint, addChild func(parent, child N)) []N {
	byID := make(map[uint]N, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}

	// 先算出每条记录的层级：根为 1，子节点为父节点层级 +1。
	// 悬空引用、自引用以及成环时被斩断的节点层级为 1，后面按根节点归位。
	depth := make(map[uint]int, len(items))
	var depthOf func(n N, stack map[uint]bool) int
	depthOf = func(n N, stack map[uint]bool) int {
		nid := id(n)
		if d, ok := depth[nid]; ok {
			return d
		}
		d := 1
		if pid := parentID(n); pid != nil && *pid != nid && !stack[nid] {
			if parent, ok := byID[*pid]; ok {
				stack[nid] = true
				d = depthOf(parent, stack) + 1
			}
		}
		depth[nid] = d
		return d
	}
	for _, it := range items {
		depthOf(it, make(map[uint]bool))
	}

	roots := make([]N, 0)
	for _, it := range items {
		nid := id(it)
		if depth[nid] == 1 || maxDepth == 1 {
			roots = append(roots, it)
			continue
		}
		parent := byID[*parentID(it)]
		if maxDepth > 0 && depth[nid] > maxDepth {
			// 沿父链上爬，挂到层级为 maxDepth-1 的祖先下
			for depth[id(parent)] > maxDepth-1 {
				parent = byID[*parentID(parent)]
			}
		}
		addChild(parent, it)
	}
	return roots
}

// MonthBucket 单个年月分组，序列化为 {"2021-06": [...]} 的形式
type MonthBucket[N any] struct {
	Month string
	Items []N
}

func (b MonthBucket[N]) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]N{b.Month: b.Items})
}

// BucketByMonth 按创建月份对根节点分组，月份新的在前。
// 分组键直接取自记录本身，因此不会出现找不到分组而丢记录的情况。
func BucketByMonth[N any](roots []N, createdAt func(N) time.Time) []MonthBucket[N] {
	grouped := make(map[string][]N)
	months := make([]string, 0)
	for _, n := range roots {
		m := createdAt(n).Format("2006-01")
		if _, ok := grouped[m]; !ok {
			months = append(months, m)
		}
		grouped[m] = append(grouped[m], n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	buckets := make([]MonthBucket[N], 0, len(months))
	for _, m := range months {
		buckets = append(buckets, MonthBucket[N]{Month: m, Items: grouped[m]})
	}
	return buckets
}
