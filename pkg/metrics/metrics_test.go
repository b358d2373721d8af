package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			mgr := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(mgr, ShouldNotBeNil)
				So(mgr.namespace, ShouldEqual, "test_namespace")
				So(mgr.subsystem, ShouldEqual, "test_subsystem")
				So(mgr.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(mgr.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(mgr.Enabled(), ShouldBeTrue)
			})

			Convey("And metric names should carry the prefix", func() {
				mgr.ratingsSaved.WithLabelValues("3").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_ratings_saved_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When options receive empty values", func() {
			registry := prometheus.NewRegistry()
			mgr := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithMetricPrefix(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithRefreshInterval(-1*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults should be kept", func() {
				So(mgr.namespace, ShouldEqual, "leetview")
				So(mgr.subsystem, ShouldEqual, "catalog")
				So(mgr.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(mgr.customLabels, ShouldNotBeNil)
				So(mgr.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording catalog metrics", func() {
			before := testutil.ToFloat64(manager().ratingsSaved.WithLabelValues("5"))
			RecordRatingSaved("5")
			RecordFilesListed("", 3)
			RecordFilesListed("python", 2)
			RecordSolutionRead("rust")
			RecordSegmentLatency(1.5)
			RecordPathRejection("traversal")
			UpdateLanguagesAvailable(4)

			Convey("Then counters and gauges should move", func() {
				So(testutil.ToFloat64(manager().ratingsSaved.WithLabelValues("5")), ShouldEqual, before+1)
				So(testutil.ToFloat64(manager().filesListed.WithLabelValues("all")), ShouldBeGreaterThanOrEqualTo, 3)
				So(testutil.ToFloat64(manager().languagesAvailable), ShouldEqual, 4)
			})
		})

		Convey("When recording store metrics", func() {
			hits := testutil.ToFloat64(manager().cacheHits)
			RecordCacheHit()
			RecordCacheMiss()
			RecordStoreQueryLatency(0.2)
			RecordStoreUpdateLatency(0.4)
			RecordStoreError("get")
			UpdateStoreRecordsTotal(7)

			Convey("Then they should be visible", func() {
				So(testutil.ToFloat64(manager().cacheHits), ShouldEqual, hits+1)
				So(testutil.ToFloat64(manager().storeRecordsTotal), ShouldEqual, 7)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("solutions", "GET", "200")
				RecordHTTPRequestDuration("solutions", "GET", "200", 12)
				RecordErrorByComponent("store", "get")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("ratings", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 3)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When metrics are disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(manager().ratingsSaved.WithLabelValues("1"))
			RecordRatingSaved("1")

			Convey("Then recorders should be no-ops", func() {
				So(testutil.ToFloat64(manager().ratingsSaved.WithLabelValues("1")), ShouldEqual, before)
			})
		})
	})
}

func TestMetricsRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordRatingSaved("2")
		families, err := GetRegistry().Gather()

		Convey("Then it should expose leetview metrics only", func() {
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "leetview_catalog_"), ShouldBeTrue)
			}
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured global manager", t, func() {
		Configure(
			WithNamespace("lv"),
			WithSubsystem("test"),
			WithMetricPrefix("p"),
			WithCustomLabels(map[string]string{"env": "ci"}),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithRefreshInterval(3*time.Second),
		)
		defer Configure()

		RecordRatingSaved("4")
		RecordSegmentLatency(5)
		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)

		Convey("Then recorders write to the new registry with its names and labels", func() {
			var saved bool
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "lv_test_p_"), ShouldBeTrue)
				if f.GetName() == "lv_test_p_ratings_saved_total" {
					saved = true
					labels := f.GetMetric()[0].GetLabel()
					found := false
					for _, l := range labels {
						if l.GetName() == "env" && l.GetValue() == "ci" {
							found = true
						}
					}
					So(found, ShouldBeTrue)
				}
				if f.GetName() == "lv_test_p_segment_latency_milliseconds" {
					So(len(f.GetMetric()[0].GetHistogram().GetBucket()), ShouldEqual, 3)
				}
			}
			So(saved, ShouldBeTrue)
			So(RefreshInterval(), ShouldEqual, 3*time.Second)
		})
	})

	Convey("Given metrics disabled through Configure", t, func() {
		Configure(WithMetricsEnabled(false))
		defer Configure()
		RecordRatingSaved("4")

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(manager().ratingsSaved.WithLabelValues("4")), ShouldEqual, 0)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(manager().cacheMisses)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				RecordCacheMiss()
				RecordHTTPRequest("languages", "GET", "200")
			}()
		}
		wg.Wait()

		Convey("Then every increment should be counted", func() {
			So(testutil.ToFloat64(manager().cacheMisses), ShouldEqual, before+50)
		})
	})
}
