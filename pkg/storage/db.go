package storage

import (
	"errors"

	"github.com/selectdb/feed_observer/pkg/config"
	"github.com/selectdb/feed_observer/pkg/xerror"
)

var (
	ErrSnapshotExists = errors.New("snapshot exists")
)

const (
	// Seq returned by LastSeq for a subject without any snapshot.
	InvalidSeq int64 = -1
)

// Snapshot is one persisted notification payload of a subject.
type Snapshot struct {
	Subject   string
	Seq       int64
	Payload   string
	CreatedAt int64 // unix milli
}

type DB interface {
	// Add a snapshot, (subject, seq) must be unique
	AddSnapshot(subject string, seq int64, payload string) error
	// Get all snapshots of subject, ordered by seq
	GetSnapshots(subject string) ([]Snapshot, error)
	// Get the largest seq of subject, InvalidSeq if none
	LastSeq(subject string) (int64, error)
	// Remove all snapshots of subject
	RemoveSubject(subject string) error

	Close() error
}

func NewDB(cfg config.StorageConfig) (DB, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryDB(), nil
	case "sqlite3":
		return NewSQLiteDB(cfg.Path)
	case "mysql":
		return NewMysqlDB(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
	default:
		return nil, xerror.Errorf(xerror.DB, "unknown storage type %q", cfg.Type)
	}
}
