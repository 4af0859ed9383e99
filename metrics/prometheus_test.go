// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPromMetrics(t *testing.T) {
	lazyCounter := LazyLoadCounter("lazy_count1")
	InitializePrometheusMetrics()

	count1 := Counter("count1")
	countVec := CounterVec("count_vec1", []string{"zero_or_one"})
	gauge1 := Gauge("gauge1")
	histVec := HistogramVec("hist_vec1", []string{"zero_or_one"}, Bucket10s)

	count1.Add(1)
	Counter("count1").Add(2)
	lazyCounter().Add(5)

	total := 0
	for i := range 10 {
		labels := map[string]string{"zero_or_one": strconv.Itoa(i % 2)}
		countVec.AddWithLabel(int64(i), labels)
		histVec.ObserveWithLabels(int64(i), labels)
		total += i
	}
	gauge1.Set(7)
	gauge1.Add(-2)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	require.Equal(t, float64(3), byName["govstake_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), byName["govstake_lazy_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), byName["govstake_gauge1"].Metric[0].GetGauge().GetValue())

	sumCountVec := byName["govstake_count_vec1"].Metric[0].GetCounter().GetValue() +
		byName["govstake_count_vec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(total), sumCountVec)

	sumHist := byName["govstake_hist_vec1"].Metric[0].GetHistogram().GetSampleSum() +
		byName["govstake_hist_vec1"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(total), sumHist)

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), "govstake_count1")
}
