package observers

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/selectdb/feed_observer/pkg/storage"
	"github.com/selectdb/feed_observer/pkg/xerror"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recorder persists every snapshot of one subject, numbered from 0 and
// continuing after the last snapshot already stored.
type Recorder[T any] struct {
	subject string
	db      storage.DB

	mu   sync.Mutex
	next int64
}

func NewRecorder[T any](subject string, db storage.DB) (*Recorder[T], error) {
	last, err := db.LastSeq(subject)
	if err != nil {
		return nil, err
	}

	log.Debugf("recorder of %s resumes at seq %d", subject, last+1)
	return &Recorder[T]{
		subject: subject,
		db:      db,
		next:    last + 1,
	}, nil
}

func (r *Recorder[T]) Name() string {
	return "Recorder(" + r.subject + ")"
}

func (r *Recorder[T]) Update(state T) error {
	payload, err := json.MarshalToString(state)
	if err != nil {
		return xerror.Wrapf(err, xerror.Normal, "marshal snapshot of %s failed", r.subject)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.AddSnapshot(r.subject, r.next, payload); err != nil {
		return err
	}
	r.next++
	return nil
}

// History loads every recorded snapshot, oldest first.
func (r *Recorder[T]) History() ([]T, error) {
	snapshots, err := r.db.GetSnapshots(r.subject)
	if err != nil {
		return nil, err
	}

	states := make([]T, 0, len(snapshots))
	for _, snapshot := range snapshots {
		var state T
		if err := json.UnmarshalFromString(snapshot.Payload, &state); err != nil {
			return nil, xerror.Wrapf(err, xerror.Normal, "unmarshal snapshot %s#%d failed", r.subject, snapshot.Seq)
		}
		states = append(states, state)
	}
	return states, nil
}
