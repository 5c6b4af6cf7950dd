package image

import "sync"

// Pool is a thread-safe pool for reusing Buffer instances.
//
// Pool groups buffers by their dimensions. Mip chains allocate the same
// sequence of sizes for every texture, so intermediate pass buffers and
// released levels are good candidates for reuse.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identically sized buffers.
type poolKey struct {
	width  int
	height int
	depth  int
}

// NewPool creates a buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a zeroed buffer from the pool or allocates a new one.
func (p *Pool) Get(width, height, depth int) (*Buffer, error) {
	key := poolKey{width: width, height: height, depth: depth}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuffer(width, height, depth)
}

// Put returns a buffer to the pool for reuse.
// If buf is nil or its bucket is full, the buffer is discarded.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}

	key := poolKey{width: buf.width, height: buf.height, depth: buf.depth}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// defaultPool is the package-level pool shared by surfaces.
var defaultPool = NewPool(4)

// GetFromDefault retrieves a buffer from the default pool.
func GetFromDefault(width, height, depth int) (*Buffer, error) {
	return defaultPool.Get(width, height, depth)
}

// PutToDefault returns a buffer to the default pool.
func PutToDefault(buf *Buffer) {
	defaultPool.Put(buf)
}
