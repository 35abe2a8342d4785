package aggregation

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// OrderedAggregate is a multiset of (key, value) entries kept in key order in
// an AVL tree. Every node carries the count and value sum of its subtree, so
// range sums and counts cost O(log n) instead of a scan.
//
// Identical (key, value) pairs share one node with a multiplicity; the tree is
// ordered by key, then by value.
type OrderedAggregate struct {
	name  string
	shape Shape

	mu   sync.RWMutex
	root *node
}

type node struct {
	key    Key
	value  decimal.Decimal
	mult   int64
	height int
	agg    Summary
	left   *node
	right  *node
}

// NewOrderedAggregate creates an empty aggregate accepting keys of the given shape.
func NewOrderedAggregate(name string, shape Shape) *OrderedAggregate {
	if len(shape) == 0 {
		panic("aggregation: shape must have at least one component")
	}
	return &OrderedAggregate{name: name, shape: shape}
}

// Name returns the aggregate name.
func (a *OrderedAggregate) Name() string { return a.name }

// Shape returns the key shape.
func (a *OrderedAggregate) Shape() Shape { return a.shape }

// Insert adds an entry. Duplicate keys are kept.
func (a *OrderedAggregate) Insert(e Entry) error {
	if err := a.shape.Match(e.Key); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.root = insertNode(a.root, e.Key, e.Value)
	return nil
}

// Remove deletes one entry with the same key and value.
func (a *OrderedAggregate) Remove(e Entry) error {
	if err := a.shape.Match(e.Key); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	root, ok := removeNode(a.root, e.Key, e.Value)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, e, a.name)
	}
	a.root = root
	return nil
}

// Replace removes old and inserts replacement under one lock. If old is
// absent the aggregate is left unchanged.
func (a *OrderedAggregate) Replace(old, replacement Entry) error {
	if err := a.shape.Match(old.Key); err != nil {
		return err
	}
	if err := a.shape.Match(replacement.Key); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	root, ok := removeNode(a.root, old.Key, old.Value)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, old, a.name)
	}
	a.root = insertNode(root, replacement.Key, replacement.Value)
	return nil
}

// Sum returns the value sum of entries within bounds.
func (a *OrderedAggregate) Sum(b Bounds) (decimal.Decimal, error) {
	s, err := a.Summarize(b)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Sum, nil
}

// Count returns the number of entries within bounds.
func (a *OrderedAggregate) Count(b Bounds) (int64, error) {
	s, err := a.Summarize(b)
	if err != nil {
		return 0, err
	}
	return s.Count, nil
}

// Summarize returns count and sum of entries within bounds from one snapshot.
func (a *OrderedAggregate) Summarize(b Bounds) (Summary, error) {
	lower, upper, err := b.resolve(a.shape)
	if err != nil {
		return Summary{Sum: decimal.Zero}, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	hi := summaryOf(a.root)
	if upper != nil {
		// Entries at or below an inclusive upper bound, strictly below an exclusive one.
		hi = prefixSummary(a.root, upper.Key, upper.Inclusive)
	}
	lo := Summary{Sum: decimal.Zero}
	if lower != nil {
		// Entries excluded by the lower bound.
		lo = prefixSummary(a.root, lower.Key, !lower.Inclusive)
	}
	s := hi.sub(lo)
	if s.Count <= 0 {
		return Summary{Sum: decimal.Zero}, nil
	}
	return s, nil
}

// Len returns the number of entries.
func (a *OrderedAggregate) Len() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return summaryOf(a.root).Count
}

// Total returns the sum of every entry value.
func (a *OrderedAggregate) Total() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return summaryOf(a.root).Sum
}

// Clear removes every entry.
func (a *OrderedAggregate) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.root = nil
}

// Swap replaces the contents with those of fresh and leaves fresh empty.
// Readers observe either the previous contents or the new ones.
func (a *OrderedAggregate) Swap(fresh *OrderedAggregate) error {
	if a == fresh {
		return nil
	}
	if len(a.shape) != len(fresh.shape) {
		return fmt.Errorf("%w: cannot swap %s with differently shaped %s", ErrInvalidKey, a.name, fresh.name)
	}
	for i := range a.shape {
		if a.shape[i] != fresh.shape[i] {
			return fmt.Errorf("%w: cannot swap %s with differently shaped %s", ErrInvalidKey, a.name, fresh.name)
		}
	}
	fresh.mu.Lock()
	root := fresh.root
	fresh.root = nil
	fresh.mu.Unlock()

	a.mu.Lock()
	a.root = root
	a.mu.Unlock()
	return nil
}

// Ascend calls fn for each entry within bounds in key order until fn returns false.
// Entries with a multiplicity above one are visited once per copy.
func (a *OrderedAggregate) Ascend(b Bounds, fn func(Entry) bool) error {
	lower, upper, err := b.resolve(a.shape)
	if err != nil {
		return err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	ascend(a.root, lower, upper, fn)
	return nil
}

func ascend(n *node, lower, upper *Bound, fn func(Entry) bool) bool {
	if n == nil {
		return true
	}
	aboveLower := lower == nil || afterLower(n.key, lower)
	belowUpper := upper == nil || beforeUpper(n.key, upper)
	if aboveLower {
		if !ascend(n.left, lower, upper, fn) {
			return false
		}
	}
	if aboveLower && belowUpper {
		for i := int64(0); i < n.mult; i++ {
			if !fn(Entry{Key: n.key, Value: n.value}) {
				return false
			}
		}
	}
	if belowUpper {
		return ascend(n.right, lower, upper, fn)
	}
	return true
}

func afterLower(key Key, b *Bound) bool {
	c := key.comparePrefix(b.Key, len(b.Key))
	return c > 0 || (c == 0 && b.Inclusive)
}

func beforeUpper(key Key, b *Bound) bool {
	c := key.comparePrefix(b.Key, len(b.Key))
	return c < 0 || (c == 0 && b.Inclusive)
}

// prefixSummary sums entries whose first len(bound) components compare below
// bound, or at-or-below it when orEqual is set. Those entries form a prefix of
// the tree order, so one root-to-leaf descent is enough.
func prefixSummary(n *node, bound Key, orEqual bool) Summary {
	acc := Summary{Sum: decimal.Zero}
	for n != nil {
		c := n.key.comparePrefix(bound, len(bound))
		if c < 0 || (orEqual && c == 0) {
			acc = acc.add(summaryOf(n.left)).add(nodeSelf(n))
			n = n.right
		} else {
			n = n.left
		}
	}
	return acc
}

func compareEntry(k Key, v decimal.Decimal, n *node) int {
	if c := k.Compare(n.key); c != 0 {
		return c
	}
	return v.Cmp(n.value)
}

func insertNode(n *node, k Key, v decimal.Decimal) *node {
	if n == nil {
		nn := &node{key: append(Key(nil), k...), value: v, mult: 1, height: 1}
		nn.update()
		return nn
	}
	switch c := compareEntry(k, v, n); {
	case c < 0:
		n.left = insertNode(n.left, k, v)
	case c > 0:
		n.right = insertNode(n.right, k, v)
	default:
		n.mult++
	}
	return rebalance(n)
}

func removeNode(n *node, k Key, v decimal.Decimal) (*node, bool) {
	if n == nil {
		return nil, false
	}
	var ok bool
	switch c := compareEntry(k, v, n); {
	case c < 0:
		n.left, ok = removeNode(n.left, k, v)
	case c > 0:
		n.right, ok = removeNode(n.right, k, v)
	default:
		ok = true
		if n.mult > 1 {
			n.mult--
			break
		}
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		var least *node
		n.right, least = detachMin(n.right)
		least.left, least.right = n.left, n.right
		n = least
	}
	if !ok {
		return n, false
	}
	return rebalance(n), true
}

func detachMin(n *node) (*node, *node) {
	if n.left == nil {
		return n.right, n
	}
	var least *node
	n.left, least = detachMin(n.left)
	return rebalance(n), least
}

func nodeSelf(n *node) Summary {
	return Summary{Count: n.mult, Sum: n.value.Mul(decimal.NewFromInt(n.mult))}
}

func summaryOf(n *node) Summary {
	if n == nil {
		return Summary{Sum: decimal.Zero}
	}
	return n.agg
}

func heightOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node) update() {
	n.height = 1 + max(heightOf(n.left), heightOf(n.right))
	n.agg = summaryOf(n.left).add(nodeSelf(n)).add(summaryOf(n.right))
}

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	n.update()
	l.update()
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	n.update()
	r.update()
	return r
}

func rebalance(n *node) *node {
	n.update()
	switch bf := heightOf(n.left) - heightOf(n.right); {
	case bf > 1:
		if heightOf(n.left.left) < heightOf(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if heightOf(n.right.right) < heightOf(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}
