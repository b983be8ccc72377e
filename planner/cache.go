package planner

import (
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Fingerprinter is implemented by boards that can summarise their
// occupancy in a single hash. Only such boards are cached.
type Fingerprinter interface {
	Fingerprint() uint64
}

// CacheStats reports SearchCache effectiveness.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Bypass uint64
	Len    int
}

type searchKey struct {
	fingerprint uint64
	shape       string
	kind        ShapeKind
	kicks       string
	cells       string
	state       State
	gravity     bool
	prune       bool
}

// SearchCache is an LRU memo of placement sets. Cached sets are shared
// between callers and must be treated as read-only.
type SearchCache struct {
	mux   sync.Mutex
	lru   *simplelru.LRU
	stats CacheStats
}

// NewSearchCache returns a cache holding up to size placement sets.
func NewSearchCache(size int) *SearchCache {
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		panic("planner: " + err.Error())
	}
	return &SearchCache{lru: lru}
}

// Search returns the cached placement set for the inputs, running the
// searcher on a miss. Boards without a fingerprint always search.
func (c *SearchCache) Search(s *Searcher, cells []Cell, initial State, extremeGravity bool) *PlacementSet {
	fp, ok := s.Board.(Fingerprinter)
	if !ok {
		c.mux.Lock()
		c.stats.Bypass++
		c.mux.Unlock()
		return s.Search(cells, initial, extremeGravity)
	}

	initial.Rotation = Wrap(initial.Rotation, 0, 4)
	key := searchKey{
		fingerprint: fp.Fingerprint(),
		shape:       s.Shape.Name,
		kind:        s.Shape.Kind,
		kicks:       kicksKey(s.Shape),
		cells:       cellsKey(cells),
		state:       initial,
		gravity:     extremeGravity,
		prune:       s.Options.PruneInverse,
	}
	return c.Lookup(key, func() *PlacementSet {
		return s.Search(cells, initial, extremeGravity)
	})
}

// Lookup returns the set stored under key, calling fetch to fill it on a
// miss.
func (c *SearchCache) Lookup(key any, fetch func() *PlacementSet) *PlacementSet {
	c.mux.Lock()
	defer c.mux.Unlock()
	if set, ok := c.lru.Get(key); ok {
		c.stats.Hits++
		return set.(*PlacementSet)
	}
	c.stats.Misses++
	set := fetch()
	c.lru.Add(key, set)
	return set
}

// Stats returns a snapshot of the hit and miss counters.
func (c *SearchCache) Stats() CacheStats {
	c.mux.Lock()
	defer c.mux.Unlock()
	stats := c.stats
	stats.Len = c.lru.Len()
	return stats
}

// Purge empties the cache.
func (c *SearchCache) Purge() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.lru.Purge()
}

func cellsKey(cells []Cell) string {
	var sb strings.Builder
	writeCells(&sb, cells)
	return sb.String()
}

// kicksKey encodes both kick tables, so shapes that share a name but not
// their kicks never share a cache entry.
func kicksKey(shape Shape) string {
	var sb strings.Builder
	for _, table := range []KickTable{shape.Kicks, shape.Kicks180} {
		for _, row := range table {
			writeCells(&sb, row)
			sb.WriteByte('|')
		}
		sb.WriteByte('/')
	}
	return sb.String()
}

func writeCells(sb *strings.Builder, cells []Cell) {
	for _, c := range cells {
		sb.WriteString(strconv.Itoa(c.X))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(c.Y))
		sb.WriteByte(';')
	}
}
