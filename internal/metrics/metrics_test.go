package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// counterValue sums every series of the named counter family.
func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetricsManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("dwr"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithRegistry(registry),
		)
		So(m.Registry(), ShouldEqual, registry)

		Convey("When a report with three items is recorded", func() {
			m.RecordDWRSubmitted(3)

			Convey("Then report and item counters advance", func() {
				So(counterValue(t, registry, "test_dwr_dwr_submitted_total"), ShouldEqual, 1.0)
				So(counterValue(t, registry, "test_dwr_dwr_items_total"), ShouldEqual, 3.0)
			})
		})

		Convey("When a submission fails", func() {
			m.RecordDWRSubmitError()

			Convey("Then the error counter advances", func() {
				So(counterValue(t, registry, "test_dwr_dwr_submit_errors_total"), ShouldEqual, 1.0)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			m.RecordHTTPRequest("foremen", "GET", "200", 4)
			m.RecordHTTPRequest("foremen", "GET", "200", 6)

			Convey("Then they are counted per label set", func() {
				So(counterValue(t, registry, "test_dwr_http_requests_total"), ShouldEqual, 2.0)
			})

			Convey("Then the handler exposes them", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "test_dwr_http_requests_total")
			})
		})
	})

	Convey("Managers without an explicit registry do not collide", t, func() {
		So(func() {
			NewManager()
			NewManager()
		}, ShouldNotPanic)
	})
}
