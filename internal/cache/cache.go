package cache

import (
	"strings"
	"sync"
)

// Key is a path of segments joined by Separator, e.g. "fugl/4/..R.".
type Key string

const Separator = "/"

// Wildcard matches any single segment in a prefix.
const Wildcard = "*"

// JoinKey builds a key from its segments. Segments must not contain the
// separator.
func JoinKey(parts ...string) Key {
	return Key(strings.Join(parts, Separator))
}

// PrefixCache is a trie of values addressed by segmented keys. Whole
// subtrees can be dropped at once, which is how stale lookups are
// invalidated when the underlying data changes.
type PrefixCache[V any] struct {
	root *node[V]
	size int
	mu   sync.RWMutex
}

func NewPrefixCache[V any]() *PrefixCache[V] {
	return &PrefixCache[V]{
		root: newNode[V](""),
	}
}

func (p *PrefixCache[V]) Get(key Key) (V, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	current := p.root
	for _, part := range split(key) {
		child, ok := current.children[part]
		if !ok {
			return *new(V), false
		}
		current = child
	}
	if current.value == nil {
		return *new(V), false
	}
	return *current.value, true
}

func (p *PrefixCache[V]) Set(key Key, value V) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.root
	var path []string
	for _, part := range split(key) {
		path = append(path, part)
		child, ok := current.children[part]
		if !ok {
			child = newNode[V](Key(strings.Join(path, Separator)))
			current.children[part] = child
		}
		current = child
	}
	if current.value == nil {
		p.size++
	}
	current.value = &value
}

// Len returns the number of stored values.
func (p *PrefixCache[V]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

// DeleteByPrefix drops every value whose key starts with the segments of
// prefix. A Wildcard segment matches any segment.
func (p *PrefixCache[V]) DeleteByPrefix(prefix Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleteByPrefix(p.root, split(prefix))
}

func (p *PrefixCache[V]) deleteByPrefix(n *node[V], parts []string) {
	if len(parts) == 0 {
		p.size -= n.count()
		n.children = map[string]*node[V]{}
		n.value = nil
		return
	}

	prune := func(part string, child *node[V]) {
		p.deleteByPrefix(child, parts[1:])
		if len(child.children) == 0 && child.value == nil {
			delete(n.children, part)
		}
	}

	if parts[0] == Wildcard {
		for part, child := range n.children {
			prune(part, child)
		}
		return
	}
	if child, ok := n.children[parts[0]]; ok {
		prune(parts[0], child)
	}
}

// Scan calls fn for every value below prefix, stopping at the first error.
func (p *PrefixCache[V]) Scan(prefix Key, fn func(key Key, value V) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var parts []string
	if prefix != "" {
		parts = split(prefix)
	}
	return p.scan(p.root, parts, fn)
}

func (p *PrefixCache[V]) scan(n *node[V], parts []string, fn func(key Key, value V) error) error {
	if len(parts) == 0 {
		if n.value != nil {
			if err := fn(n.key, *n.value); err != nil {
				return err
			}
		}
		for _, child := range n.children {
			if err := p.scan(child, nil, fn); err != nil {
				return err
			}
		}
		return nil
	}

	if parts[0] == Wildcard {
		for _, child := range n.children {
			if err := p.scan(child, parts[1:], fn); err != nil {
				return err
			}
		}
		return nil
	}
	if child, ok := n.children[parts[0]]; ok {
		return p.scan(child, parts[1:], fn)
	}
	return nil
}

func split(key Key) []string {
	return strings.Split(string(key), Separator)
}

type node[V any] struct {
	key      Key
	value    *V
	children map[string]*node[V]
}

func newNode[V any](key Key) *node[V] {
	return &node[V]{
		key:      key,
		children: map[string]*node[V]{},
	}
}

func (n *node[V]) count() int {
	c := 0
	if n.value != nil {
		c++
	}
	for _, child := range n.children {
		c += child.count()
	}
	return c
}
