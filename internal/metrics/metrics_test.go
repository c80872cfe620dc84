package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue はGather結果から指定メトリクスのカウンタ値を探す。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("%s metric not found", name)
	return 0
}

// TestRecordAuthCounters は認証まわりのカウンタが増加することを検証する。
func TestRecordAuthCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginSuccess()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordTokenRefresh()
	c.RecordTokenRevoke()
	c.RecordTokenRevoke()
	c.RecordTokenRevoke()

	if val := counterValue(t, reg, "sasayaki_login_success_total"); val != 2 {
		t.Errorf("login_success_total = %v, want 2", val)
	}
	if val := counterValue(t, reg, "sasayaki_login_fail_total"); val != 1 {
		t.Errorf("login_fail_total = %v, want 1", val)
	}
	if val := counterValue(t, reg, "sasayaki_token_refresh_total"); val != 1 {
		t.Errorf("token_refresh_total = %v, want 1", val)
	}
	if val := counterValue(t, reg, "sasayaki_token_revoke_total"); val != 3 {
		t.Errorf("token_revoke_total = %v, want 3", val)
	}
}

// TestRecordPostCreated_IncrementsCounter は投稿作成カウンタが増加することを検証する。
func TestRecordPostCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPostCreated()
	c.RecordPostCreated()

	if val := counterValue(t, reg, "sasayaki_post_created_total"); val != 2 {
		t.Errorf("post_created_total = %v, want 2", val)
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(401)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "sasayaki_http_status_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
			}
			for _, m := range mf.GetMetric() {
				label := m.GetLabel()[0].GetValue()
				val := m.GetCounter().GetValue()
				switch label {
				case "200":
					if val != 2 {
						t.Errorf("http_status_total{status_code=200} = %v, want 2", val)
					}
				case "401":
					if val != 1 {
						t.Errorf("http_status_total{status_code=401} = %v, want 1", val)
					}
				default:
					t.Errorf("unexpected label value: %s", label)
				}
			}
		}
	}
	if !found {
		t.Error("sasayaki_http_status_total metric not found")
	}
}

// TestRecordRequestLatency_ObservesHistogram はレイテンシのヒストグラムに値が記録されることを検証する。
func TestRecordRequestLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(100 * time.Millisecond)
	c.RecordRequestLatency(2 * time.Second)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "sasayaki_request_latency_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 2 {
				t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
			}
			// 合計は0.1 + 2.0 = 2.1秒
			if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
				t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
			}
		}
	}
	if !found {
		t.Error("sasayaki_request_latency_seconds metric not found")
	}
}

// TestRecordTokensPurged_AddsCount はトークン削除カウンタが件数分増加することを検証する。
func TestRecordTokensPurged_AddsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTokensPurged(10)
	c.RecordTokensPurged(5)

	if val := counterValue(t, reg, "sasayaki_tokens_purged_total"); val != 15 {
		t.Errorf("tokens_purged_total = %v, want 15", val)
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// いくつかのメトリクスを記録
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordPostCreated()
	c.RecordHTTPStatus(200)
	c.RecordRequestLatency(500 * time.Millisecond)
	c.RecordTokensPurged(3)

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	// Prometheus形式のメトリクスが含まれていることを確認
	expectedMetrics := []string{
		"sasayaki_login_success_total",
		"sasayaki_login_fail_total",
		"sasayaki_post_created_total",
		"sasayaki_http_status_total",
		"sasayaki_request_latency_seconds",
		"sasayaki_tokens_purged_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordLoginSuccess()
	c2.RecordLoginSuccess()
	c2.RecordLoginSuccess()

	if val := counterValue(t, reg1, "sasayaki_login_success_total"); val != 1 {
		t.Errorf("reg1 login_success = %v, want 1", val)
	}
	if val := counterValue(t, reg2, "sasayaki_login_success_total"); val != 2 {
		t.Errorf("reg2 login_success = %v, want 2", val)
	}
}
