package utils

import (
	"github.com/modern-go/gls"
	"github.com/sirupsen/logrus"
)

// SubjectField is the gls key and log field naming the subject whose
// notification pass is running on the current goroutine.
const SubjectField = "subject"

type NotifyHook struct {
	Field  string
	levels []logrus.Level
}

func (hook *NotifyHook) Levels() []logrus.Level {
	return hook.levels
}

func (hook *NotifyHook) Fire(entry *logrus.Entry) error {
	if name := gls.Get(hook.Field); name != nil {
		entry.Data[hook.Field] = name
	}
	return nil
}

func NewNotifyHook(levels ...logrus.Level) *NotifyHook {
	hook := NotifyHook{
		Field:  SubjectField,
		levels: levels,
	}
	if len(hook.levels) == 0 {
		hook.levels = logrus.AllLevels
	}

	return &hook
}

// WithSubject runs fn with SubjectField set to name for the current goroutine,
// restoring the previous value afterwards so nested passes log correctly.
func WithSubject(name string, fn func()) {
	goid := gls.GoID()
	prev := gls.Get(SubjectField)
	if prev == nil {
		gls.ResetGls(goid, map[interface{}]interface{}{SubjectField: name})
		defer gls.DeleteGls(goid)
	} else {
		gls.Set(SubjectField, name)
		defer gls.Set(SubjectField, prev)
	}

	fn()
}
