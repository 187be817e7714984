package xmetrics

import "github.com/selectdb/feed_observer/pkg/xerror"

type IMetricsTag interface {
	Tag() []string
}

type metricsTag struct {
	tags []string
}

// dashboard metrics
type dashboardMetrics struct {
	metricsTag
}

func DashboardMetrics() *dashboardMetrics {
	return &dashboardMetrics{
		metricsTag: metricsTag{[]string{"dashboard"}},
	}
}

func (d *dashboardMetrics) Tag() []string {
	return d.tags
}

func (d *dashboardMetrics) NotificationNum() IMetricsTag {
	d.tags = append(d.tags, "notificationNum")
	return d
}

// subject metrics
type subjectMetrics struct {
	metricsTag
	name string
}

func SubjectMetrics(subjectName string) *subjectMetrics {
	return &subjectMetrics{
		metricsTag: metricsTag{[]string{"subject"}},
		name:       subjectName,
	}
}

func (s *subjectMetrics) Tag() []string {
	s.tags = append(s.tags, s.name)
	return s.tags
}

func (s *subjectMetrics) Notifications() IMetricsTag {
	s.tags = append(s.tags, "notifications")
	return s
}

func (s *subjectMetrics) Deliveries() IMetricsTag {
	s.tags = append(s.tags, "deliveries")
	return s
}

func (s *subjectMetrics) Failures() IMetricsTag {
	s.tags = append(s.tags, "failures")
	return s
}

func (s *subjectMetrics) Rejected() IMetricsTag {
	s.tags = append(s.tags, "rejected")
	return s
}

func (s *subjectMetrics) ObserverNum() IMetricsTag {
	s.tags = append(s.tags, "observerNum")
	return s
}

func (s *subjectMetrics) PassLatency() IMetricsTag {
	s.tags = append(s.tags, "passLatency")
	return s
}

// error metrics
type errorMetrics struct {
	metricsTag
}

func ErrorMetrics(err *xerror.XError) IMetricsTag {
	errMetrics := &errorMetrics{
		metricsTag: metricsTag{[]string{"error", err.Category().Name()}},
	}

	// use switch instead of ifelse maybe
	if err.IsRecoverable() {
		errMetrics.tags = append(errMetrics.tags, "recoverable")
	} else if err.IsPanic() {
		errMetrics.tags = append(errMetrics.tags, "panic")
	} else {
		errMetrics.tags = append(errMetrics.tags, "unknown")
	}

	return errMetrics
}

func (e *errorMetrics) Tag() []string {
	return e.tags
}
