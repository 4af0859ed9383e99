// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	bootstrapped bool
	last         uint64
	err          error
}

func (f *fakeSource) Bootstrapped() (bool, error) { return f.bootstrapped, f.err }
func (f *fakeSource) LastTimestamp() uint64       { return f.last }

func TestHealth_Status(t *testing.T) {
	src := &fakeSource{}
	h := New(src)

	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	require.NotNil(t, status.LastChange)
	first := *status.LastChange

	src.bootstrapped, src.last = true, 1000
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.True(t, status.Bootstrapped)
	assert.Equal(t, uint64(1000), status.LastTimestamp)
	assert.False(t, status.LastChange.Before(first))

	changed := *status.LastChange
	status, err = h.Status()
	require.NoError(t, err)
	assert.Equal(t, changed, *status.LastChange)
}

func TestHealth_SourceError(t *testing.T) {
	h := New(&fakeSource{err: errors.New("db closed")})
	_, err := h.Status()
	assert.Error(t, err)
}
