package xmetrics

import (
	"time"

	"github.com/hashicorp/go-metrics"
	"github.com/hashicorp/go-metrics/prometheus"
	"github.com/selectdb/feed_observer/pkg/config"
	"github.com/selectdb/feed_observer/pkg/xerror"
)

// InitGlobal installs the global metrics sink. A nil sink means prometheus.
func InitGlobal(cfg config.MetricsConfig, sink metrics.MetricSink) error {
	if !cfg.Enabled {
		sink = &metrics.BlackholeSink{}
	} else if sink == nil {
		promSink, err := prometheus.NewPrometheusSink()
		if err != nil {
			return xerror.Wrap(err, xerror.Normal, "init prometheus sink falied")
		}
		sink = promSink
	}

	metricsConfig := metrics.DefaultConfig(cfg.ServiceName)
	metricsConfig.EnableHostname = false
	metricsConfig.EnableRuntimeMetrics = false
	if _, err := metrics.NewGlobal(metricsConfig, sink); err != nil {
		return xerror.Wrap(err, xerror.Normal, "new global metrics falied")
	}

	return nil
}

func AddError(err *xerror.XError) {
	metrics.IncrCounter(ErrorMetrics(err).Tag(), 1)
}

func Notified(subject string, observers int, start time.Time) {
	metrics.IncrCounter(SubjectMetrics(subject).Notifications().Tag(), 1)
	metrics.IncrCounter(DashboardMetrics().NotificationNum().Tag(), 1)
	metrics.IncrCounter(SubjectMetrics(subject).Deliveries().Tag(), float32(observers))
	metrics.MeasureSince(SubjectMetrics(subject).PassLatency().Tag(), start)
}

func ObserverFailed(subject string, err *xerror.XError) {
	metrics.IncrCounter(SubjectMetrics(subject).Failures().Tag(), 1)
	AddError(err)
}

func StateRejected(subject string) {
	metrics.IncrCounter(SubjectMetrics(subject).Rejected().Tag(), 1)
}

func ObserverNum(subject string, n int) {
	metrics.SetGauge(SubjectMetrics(subject).ObserverNum().Tag(), float32(n))
}
