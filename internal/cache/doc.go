// Package cache provides a small generic LRU cache for computed values that
// are expensive to build and cheap to share, such as polyphase kernels.
//
//	c := cache.New[key, *filter.Polyphase](128)
//	p := c.GetOrCreate(k, func() *filter.Polyphase { return build(k) })
//
// All methods are safe for concurrent use.
package cache
