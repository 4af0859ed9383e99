// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	noop := defaultNoopMetrics()

	require.Nil(t, noop.GetOrCreateHandler())

	for _, a := range []any{
		noop.GetOrCreateGaugeMeter("noopGauge"),
		noop.GetOrCreateCountMeter("noopCounter"),
		noop.GetOrCreateCountVecMeter("noopCounterVec", nil),
		noop.GetOrCreateHistogramVecMeter("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	// none of these may panic
	noop.GetOrCreateCountMeter("c").Add(1)
	noop.GetOrCreateGaugeMeter("g").Set(1)
	noop.GetOrCreateCountVecMeter("cv", []string{"x"}).AddWithLabel(1, map[string]string{"nonsense": "ok"})
	noop.GetOrCreateHistogramVecMeter("h", []string{"x"}, nil).ObserveWithLabels(1, map[string]string{"nonsense": "ok"})
}
