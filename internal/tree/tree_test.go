package tree

import (
	"encoding/json"
	"testing"
	"time"
)

type node struct {
	ID       uint
	ParentID *uint
	Created  time.Time
	Children []*node
}

func pid(v uint) *uint { return &v }

func build(maxDepth int, items ...*node) []*node {
	return Build(items, maxDepth,
		func(n *node) uint { return n.ID },
		func(n *node) *uint { return n.ParentID },
		func(parent, child *node) { parent.Children = append(parent.Children, child) },
	)
}

func flatten(roots []*node) []*node {
	var out []*node
	var walk func(ns []*node)
	walk = func(ns []*node) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

func TestBuildNestedChain(t *testing.T) {
	roots := build(0,
		&node{ID: 1},
		&node{ID: 2, ParentID: pid(1)},
		&node{ID: 3, ParentID: pid(2)},
		&node{ID: 4},
	)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 4 {
		t.Errorf("root order wrong: got %d, %d", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != 2 {
		t.Fatalf("expected 2 nested under 1, got %+v", roots[0].Children)
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != 3 {
		t.Fatalf("expected 3 nested under 2")
	}
	if len(roots[1].Children) != 0 {
		t.Errorf("expected 4 to have no children")
	}
}

func TestBuildLossless(t *testing.T) {
	items := []*node{
		{ID: 1},
		{ID: 2, ParentID: pid(1)},
		{ID: 3, ParentID: pid(1)},
		{ID: 4, ParentID: pid(3)},
		{ID: 5},
		{ID: 6, ParentID: pid(5)},
		{ID: 7, ParentID: pid(4)},
	}
	roots := build(0, items...)

	flat := flatten(roots)
	if len(flat) != len(items) {
		t.Fatalf("expected %d records in output, got %d", len(items), len(flat))
	}
	seen := make(map[uint]int)
	for _, n := range flat {
		seen[n.ID]++
	}
	for _, it := range items {
		if seen[it.ID] != 1 {
			t.Errorf("record %d appears %d times in output", it.ID, seen[it.ID])
		}
	}
}

func TestBuildChildNestedUnderItsParent(t *testing.T) {
	roots := build(0,
		&node{ID: 10},
		&node{ID: 11, ParentID: pid(10)},
		&node{ID: 12, ParentID: pid(11)},
		&node{ID: 13, ParentID: pid(10)},
	)
	var check func(parent *node)
	check = func(parent *node) {
		for _, c := range parent.Children {
			if c.ParentID == nil || *c.ParentID != parent.ID {
				t.Errorf("record %d nested under %d but parent_id is %v", c.ID, parent.ID, c.ParentID)
			}
			check(c)
		}
	}
	for _, r := range roots {
		check(r)
	}
}

func TestBuildAllRoots(t *testing.T) {
	roots := build(0, &node{ID: 3}, &node{ID: 1}, &node{ID: 2})
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}
	// 保持输入顺序
	want := []uint{3, 1, 2}
	for i, r := range roots {
		if r.ID != want[i] {
			t.Errorf("root %d: expected id %d, got %d", i, want[i], r.ID)
		}
		if len(r.Children) != 0 {
			t.Errorf("root %d should have no children", r.ID)
		}
	}
}

func TestBuildDanglingParentTerminates(t *testing.T) {
	done := make(chan []*node, 1)
	go func() {
		done <- build(0, &node{ID: 1, ParentID: pid(99)})
	}()

	select {
	case roots := <-done:
		if len(roots) != 1 || roots[0].ID != 1 {
			t.Fatalf("dangling record should be promoted to root, got %+v", roots)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Build did not terminate on dangling parent reference")
	}
}

func TestBuildChildBeforeParent(t *testing.T) {
	// 深层回复排在其父节点之前，依然要挂接成功
	roots := build(0,
		&node{ID: 3, ParentID: pid(2)},
		&node{ID: 2, ParentID: pid(1)},
		&node{ID: 1},
	)
	if len(roots) != 1 || roots[0].ID != 1 {
		t.Fatalf("expected single root 1, got %+v", roots)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != 2 {
		t.Fatal("expected 2 under 1")
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != 3 {
		t.Fatal("expected 3 under 2")
	}
}

func TestBuildIdempotent(t *testing.T) {
	items := []*node{
		{ID: 1},
		{ID: 2, ParentID: pid(1)},
		{ID: 3, ParentID: pid(2)},
		{ID: 4},
		{ID: 5, ParentID: pid(4)},
	}
	first := build(0, items...)

	// 把森林重新拍平、清掉 children 再物化一次，结果应当一致
	flat := flatten(first)
	again := make([]*node, len(flat))
	for i, n := range flat {
		again[i] = &node{ID: n.ID, ParentID: n.ParentID}
	}
	second := build(0, again...)

	type plain struct {
		ID       uint    `json:"id"`
		Children []plain `json:"children"`
	}
	shape := func(roots []*node) []plain {
		var conv func(ns []*node) []plain
		conv = func(ns []*node) []plain {
			out := make([]plain, 0, len(ns))
			for _, n := range ns {
				out = append(out, plain{ID: n.ID, Children: conv(n.Children)})
			}
			return out
		}
		return conv(roots)
	}
	a, _ := json.Marshal(shape(first))
	b, _ := json.Marshal(shape(second))
	if string(a) != string(b) {
		t.Errorf("re-materialization changed the forest:\nfirst:  %s\nsecond: %s", a, b)
	}
}

func TestBuildMaxDepth(t *testing.T) {
	roots := build(3,
		&node{ID: 1},
		&node{ID: 2, ParentID: pid(1)},
		&node{ID: 3, ParentID: pid(2)},
		&node{ID: 4, ParentID: pid(3)},
		&node{ID: 5, ParentID: pid(4)},
	)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	n2 := roots[0].Children[0]
	if n2.ID != 2 || len(n2.Children) != 3 {
		t.Fatalf("expected 3, 4, 5 all capped under 2, got %+v", n2.Children)
	}
	want := []uint{3, 4, 5}
	for i, c := range n2.Children {
		if c.ID != want[i] {
			t.Errorf("capped child %d: expected %d, got %d", i, want[i], c.ID)
		}
	}
	// 不丢记录
	if got := len(flatten(roots)); got != 5 {
		t.Errorf("expected 5 records after capping, got %d", got)
	}
}

func TestBucketByMonth(t *testing.T) {
	mk := func(id uint, ts string) *node {
		created, err := time.Parse("2006-01-02", ts)
		if err != nil {
			t.Fatal(err)
		}
		return &node{ID: id, Created: created}
	}
	buckets := BucketByMonth(
		[]*node{mk(1, "2021-05-02"), mk(2, "2021-06-11"), mk(3, "2021-05-28")},
		func(n *node) time.Time { return n.Created },
	)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Month != "2021-06" || buckets[1].Month != "2021-05" {
		t.Errorf("buckets not ordered newest first: %s, %s", buckets[0].Month, buckets[1].Month)
	}
	if len(buckets[0].Items) != 1 || buckets[0].Items[0].ID != 2 {
		t.Errorf("2021-06 bucket wrong: %+v", buckets[0].Items)
	}
	if len(buckets[1].Items) != 2 || buckets[1].Items[0].ID != 1 || buckets[1].Items[1].ID != 3 {
		t.Errorf("2021-05 bucket wrong: %+v", buckets[1].Items)
	}

	// 序列化为 [{"2021-06":[...]}, {"2021-05":[...]}]
	b, err := json.Marshal(buckets)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]json.RawMessage
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded[0]["2021-06"]; !ok {
		t.Errorf("expected first group keyed by 2021-06, got %s", b)
	}
	if _, ok := decoded[1]["2021-05"]; !ok {
		t.Errorf("expected second group keyed by 2021-05, got %s", b)
	}
}
