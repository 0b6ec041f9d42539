package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanMetrics 内容扫描Prometheus指标
type ScanMetrics struct {
	scansTotal    *prometheus.CounterVec
	chunksScanned *prometheus.CounterVec
	itemsSkipped  *prometheus.CounterVec
	scanDuration  *prometheus.HistogramVec
}

// NewScanMetrics 创建并注册扫描指标
func NewScanMetrics() *ScanMetrics {
	return newScanMetrics(prometheus.DefaultRegisterer)
}

// newScanMetrics 在指定registry注册扫描指标（测试用独立registry）
func newScanMetrics(reg prometheus.Registerer) *ScanMetrics {
	factory := promauto.With(reg)
	return &ScanMetrics{
		scansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_scans_total",
			Help: "Number of source scans by kind and result",
		}, []string{"kind", "result"}),
		chunksScanned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_chunks_scanned_total",
			Help: "Number of chunks produced by fresh scans",
		}, []string{"kind"}),
		itemsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kb_items_skipped_total",
			Help: "Number of raw items skipped due to mapping failures",
		}, []string{"kind"}),
		scanDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kb_scan_duration_seconds",
			Help:    "Duration of fresh source scans",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

// ObserveScan 记录一次扫描结果
func (m *ScanMetrics) ObserveScan(kind, result string, chunkCount int, elapsed time.Duration) {
	m.scansTotal.WithLabelValues(kind, result).Inc()
	if result == "scanned" {
		m.chunksScanned.WithLabelValues(kind).Add(float64(chunkCount))
		m.scanDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

// ItemSkipped 记录一条映射失败被跳过的内容
func (m *ScanMetrics) ItemSkipped(kind string) {
	m.itemsSkipped.WithLabelValues(kind).Inc()
}
