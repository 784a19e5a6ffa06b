package server

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/vntok/internal/tokenizer"
)

// resultCache keeps recent tokenize results keyed by the raw request text.
// A nil *resultCache is a disabled cache.
type resultCache struct {
	lru *lru.Cache[string, tokenizer.Result]
}

// newResultCache returns nil when size is not positive.
func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, tokenizer.Result](size)
	if err != nil {
		return nil
	}
	return &resultCache{lru: c}
}

func (c *resultCache) get(text string) (tokenizer.Result, bool) {
	if c == nil {
		return tokenizer.Result{}, false
	}
	return c.lru.Get(text)
}

func (c *resultCache) add(text string, res tokenizer.Result) {
	if c == nil {
		return
	}
	c.lru.Add(text, res)
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
