package backend

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/feewise/feewise/pkg/db/models"
)

// cache keeps recently fetched fee types. Entries are invalidated on any
// write to the underlying row.
type cache struct {
	b        *Backend
	feeTypes *lru.Cache[int64, models.FeeType]
}

func newCache(b *Backend, size int) *cache {
	if size <= 0 {
		size = 1
	}
	c := &cache{b: b}
	cache, _ := lru.New[int64, models.FeeType](size)
	c.feeTypes = cache
	return c
}

func (c *cache) Get(id int64) (models.FeeType, bool) {
	return c.feeTypes.Get(id)
}

func (c *cache) Set(id int64, ft models.FeeType) {
	c.feeTypes.Add(id, ft)
}

func (c *cache) Delete(id int64) {
	c.feeTypes.Remove(id)
}

func (c *cache) Len() int {
	return c.feeTypes.Len()
}
