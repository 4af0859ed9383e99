// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

// Source reports the progress of the contract host.
type Source interface {
	Bootstrapped() (bool, error)
	LastTimestamp() uint64
}

type Status struct {
	Healthy       bool       `json:"healthy"`
	Bootstrapped  bool       `json:"bootstrapped"`
	LastTimestamp uint64     `json:"lastTimestamp"`
	LastChange    *time.Time `json:"lastChange"`
}

type Health struct {
	lock       sync.Mutex
	source     Source
	lastSeen   uint64
	lastChange time.Time
}

func New(source Source) *Health {
	return &Health{source: source}
}

// Status is healthy once genesis state is committed.
func (h *Health) Status() (*Status, error) {
	bootstrapped, err := h.source.Bootstrapped()
	if err != nil {
		return nil, err
	}
	last := h.source.LastTimestamp()

	h.lock.Lock()
	defer h.lock.Unlock()

	if last != h.lastSeen || h.lastChange.IsZero() {
		h.lastSeen = last
		h.lastChange = time.Now()
	}
	lastChange := h.lastChange

	return &Status{
		Healthy:       bootstrapped,
		Bootstrapped:  bootstrapped,
		LastTimestamp: last,
		LastChange:    &lastChange,
	}, nil
}
