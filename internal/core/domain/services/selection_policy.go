package services

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
)

const (
	PolicyNearest    = "nearest"
	PolicyRoundRobin = "round_robin"
)

// SelectionPolicy picks one partner among candidates that are all able to take the
// order. pickup is the restaurant's position and may be the zero Geo when unknown.
type SelectionPolicy interface {
	Select(pickup kernel.Geo, candidates []*courier.Courier) (*courier.Courier, error)
}

// NewSelectionPolicy maps a configured policy name to its implementation.
func NewSelectionPolicy(name string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyNearest:
		return NearestPolicy{}, nil
	case PolicyRoundRobin:
		return &RoundRobinPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}

// NearestPolicy picks the candidate closest to the pickup point. Ties keep the
// first candidate. Without a pickup point the first candidate wins.
type NearestPolicy struct{}

func (NearestPolicy) Select(pickup kernel.Geo, candidates []*courier.Courier) (*courier.Courier, error) {
	if len(candidates) == 0 {
		return nil, ErrNoPartnerAvailable
	}
	if pickup.Validate() != nil {
		return candidates[0], nil
	}

	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)
	for _, c := range candidates {
		d, err := c.DistanceKmTo(pickup)
		if err != nil {
			return nil, err
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, nil
}

// RoundRobinPolicy cycles through partners in identifier order, resuming after the
// partner picked last time. It is safe for concurrent use.
type RoundRobinPolicy struct {
	mu   sync.Mutex
	last *kernel.UUID
}

func (p *RoundRobinPolicy) Select(_ kernel.Geo, candidates []*courier.Courier) (*courier.Courier, error) {
	if len(candidates) == 0 {
		return nil, ErrNoPartnerAvailable
	}

	sorted := append([]*courier.Courier(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].ID().Bytes(), sorted[j].ID().Bytes()
		return bytes.Compare(a[:], b[:]) < 0
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	next := sorted[0]
	if p.last != nil {
		last := p.last.Bytes()
		for _, c := range sorted {
			id := c.ID().Bytes()
			if bytes.Compare(id[:], last[:]) > 0 {
				next = c
				break
			}
		}
	}

	id := next.ID()
	p.last = &id
	return next, nil
}
