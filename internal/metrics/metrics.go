// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラー層から利用する。
type MetricsCollector interface {
	RecordSectionSave(section string)
	RecordRender(templateID string)
	RecordExport(format string, success bool)
	RecordShareCreated()
	RecordPublicView(found bool)
	RecordHTTPStatus(statusCode int)
	RecordExportLatency(format string, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	sectionSaves  *prometheus.CounterVec
	renders       *prometheus.CounterVec
	exports       *prometheus.CounterVec
	sharesCreated prometheus.Counter
	publicViews   *prometheus.CounterVec
	httpStatus    *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sectionSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumake_section_saves_total",
			Help: "セクション保存のカテゴリ別合計数",
		}, []string{"section"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumake_renders_total",
			Help: "レジュメ描画のテンプレート別合計数",
		}, []string{"template"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumake_exports_total",
			Help: "エクスポートのフォーマット・結果別合計数",
		}, []string{"format", "outcome"}),
		sharesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumake_shares_created_total",
			Help: "公開スナップショット作成の合計数",
		}),
		publicViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumake_public_views_total",
			Help: "公開レジュメ閲覧の結果別合計数",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resumake_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		exportLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resumake_export_latency_seconds",
			Help:    "エクスポートのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}

	reg.MustRegister(
		c.sectionSaves,
		c.renders,
		c.exports,
		c.sharesCreated,
		c.publicViews,
		c.httpStatus,
		c.exportLatency,
	)

	return c
}

// RecordSectionSave はセクション保存を記録する。
func (c *Collector) RecordSectionSave(section string) {
	c.sectionSaves.WithLabelValues(section).Inc()
}

// RecordRender はレジュメ描画を記録する。
func (c *Collector) RecordRender(templateID string) {
	c.renders.WithLabelValues(templateID).Inc()
}

// RecordExport はエクスポートの結果を記録する。
func (c *Collector) RecordExport(format string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	c.exports.WithLabelValues(format, outcome).Inc()
}

// RecordShareCreated は公開スナップショット作成を記録する。
func (c *Collector) RecordShareCreated() {
	c.sharesCreated.Inc()
}

// RecordPublicView は公開レジュメ閲覧を記録する。
func (c *Collector) RecordPublicView(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	c.publicViews.WithLabelValues(outcome).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordExportLatency はエクスポートのレイテンシを記録する。
func (c *Collector) RecordExportLatency(format string, duration time.Duration) {
	c.exportLatency.WithLabelValues(format).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
