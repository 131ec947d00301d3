// SPDX-License-Identifier: MIT

package admittance

import (
	"sync"

	"github.com/katalvlaran/gridflow/network"
)

// Cache keeps the most recent models of one network lineage and rebuilds
// them when the version token moves. It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	opts   []Option
	ac     *ACModel
	dc     *DCModel
	fd     map[Variant]*DecoupledModel
	builds int
}

// NewCache returns an empty cache; opts are forwarded to every build.
func NewCache(opts ...Option) *Cache {
	return &Cache{opts: opts, fd: make(map[Variant]*DecoupledModel)}
}

// AC returns a fresh AC model for n, building it if needed.
func (c *Cache) AC(n *network.Network) (*ACModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ac != nil && c.ac.Fresh(n) {
		return c.ac, nil
	}
	m, err := BuildAC(n, c.opts...)
	if err != nil {
		return nil, err
	}
	c.ac = m
	c.builds++

	return m, nil
}

// DC returns a fresh DC model for n, building it if needed.
func (c *Cache) DC(n *network.Network) (*DCModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dc != nil && c.dc.Fresh(n) {
		return c.dc, nil
	}
	m, err := BuildDC(n, c.opts...)
	if err != nil {
		return nil, err
	}
	c.dc = m
	c.builds++

	return m, nil
}

// FastDecoupled returns fresh B′/B″ matrices for n and variant v.
func (c *Cache) FastDecoupled(n *network.Network, v Variant) (*DecoupledModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m := c.fd[v]; m != nil && m.Fresh(n) {
		return m, nil
	}
	m, err := BuildFastDecoupled(n, v, c.opts...)
	if err != nil {
		return nil, err
	}
	c.fd[v] = m
	c.builds++

	return m, nil
}

// Invalidate drops every cached model.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ac, c.dc = nil, nil
	c.fd = make(map[Variant]*DecoupledModel)
}

// Builds reports how many models the cache has built so far.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.builds
}
