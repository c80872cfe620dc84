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
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenRefresh()
	RecordTokenRevoke()
	RecordPostCreated()
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordTokensPurged(count int64)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	loginSuccess   prometheus.Counter
	loginFail      prometheus.Counter
	tokenRefresh   prometheus.Counter
	tokenRevoke    prometheus.Counter
	postCreated    prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
	tokensPurged   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		tokenRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_token_refresh_total",
			Help: "アクセストークン再発行の合計数",
		}),
		tokenRevoke: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_token_revoke_total",
			Help: "リフレッシュトークン失効の合計数",
		}),
		postCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_post_created_total",
			Help: "作成された投稿の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasayaki_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sasayaki_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		tokensPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sasayaki_tokens_purged_total",
			Help: "クリーンアップで削除されたリフレッシュトークンの合計数",
		}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFail,
		c.tokenRefresh,
		c.tokenRevoke,
		c.postCreated,
		c.httpStatus,
		c.requestLatency,
		c.tokensPurged,
	)

	return c
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordTokenRefresh はアクセストークン再発行を記録する。
func (c *Collector) RecordTokenRefresh() {
	c.tokenRefresh.Inc()
}

// RecordTokenRevoke はリフレッシュトークン失効を記録する。
func (c *Collector) RecordTokenRevoke() {
	c.tokenRevoke.Inc()
}

// RecordPostCreated は投稿作成を記録する。
func (c *Collector) RecordPostCreated() {
	c.postCreated.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordTokensPurged はクリーンアップで削除されたトークン数を記録する。
func (c *Collector) RecordTokensPurged(count int64) {
	c.tokensPurged.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
