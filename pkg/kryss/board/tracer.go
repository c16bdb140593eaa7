package board

import (
	"github.com/sirupsen/logrus"

	"github.com/kryssord/kryss/pkg/kryss"
)

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ kryss.Event) {
}

// LoggingTracer writes solver events to Logger. Rollbacks caused by a
// disagreeing commit are logged as warnings.
type LoggingTracer struct {
	Logger *logrus.Entry
}

func (t LoggingTracer) Trace(e kryss.Event) {
	switch e.Type {
	case kryss.EventCommit:
		t.Logger.WithField("word", e.Slot).Info("placing ", e.Description)
	case kryss.EventRollback:
		entry := t.Logger.WithField("word", e.Slot)
		if e.Cause < 0 {
			entry.Info("unplacing ", e.Description)
			return
		}
		entry.WithField("cause", e.Cause).Warn("unplacing ", e.Description)
	case kryss.EventStatus:
		t.Logger.WithField("status", e.Status).Debug("board classified")
	}
}
