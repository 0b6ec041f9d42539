package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScan(t *testing.T) {
	m := newScanMetrics(prometheus.NewRegistry())

	m.ObserveScan("product", "scanned", 12, 150*time.Millisecond)
	m.ObserveScan("product", "cache_hit", 12, 0)
	m.ObserveScan("page", "error", 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.scansTotal.WithLabelValues("product", "scanned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scansTotal.WithLabelValues("product", "cache_hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scansTotal.WithLabelValues("page", "error")))

	// 只有真实扫描计入内容块数量
	assert.Equal(t, 12.0, testutil.ToFloat64(m.chunksScanned.WithLabelValues("product")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.chunksScanned.WithLabelValues("page")))
}

func TestItemSkipped(t *testing.T) {
	m := newScanMetrics(prometheus.NewRegistry())

	m.ItemSkipped("product")
	m.ItemSkipped("product")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.itemsSkipped.WithLabelValues("product")))
}
