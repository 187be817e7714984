package storage

import (
	"database/sql"
	"time"

	"github.com/selectdb/feed_observer/pkg/xerror"
)

// sqlStore holds the queries shared by the database/sql backends, both
// drivers accept '?' placeholders.
type sqlStore struct {
	db     *sql.DB
	driver string
}

func (s *sqlStore) AddSnapshot(subject string, seq int64, payload string) error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE subject = ? AND seq = ?", subject, seq).Scan(&count); err != nil {
		return xerror.Wrapf(err, xerror.DB, "%s: query snapshot %s#%d failed", s.driver, subject, seq)
	}

	if count > 0 {
		return ErrSnapshotExists
	}

	if _, err := s.db.Exec("INSERT INTO snapshots (subject, seq, payload, created_at) VALUES (?, ?, ?, ?)",
		subject, seq, payload, time.Now().UnixMilli()); err != nil {
		return xerror.Wrapf(err, xerror.DB, "%s: insert snapshot %s#%d failed", s.driver, subject, seq)
	}
	return nil
}

func (s *sqlStore) GetSnapshots(subject string) ([]Snapshot, error) {
	rows, err := s.db.Query("SELECT seq, payload, created_at FROM snapshots WHERE subject = ? ORDER BY seq", subject)
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "%s: query snapshots of %s failed", s.driver, subject)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snapshot := Snapshot{Subject: subject}
		if err := rows.Scan(&snapshot.Seq, &snapshot.Payload, &snapshot.CreatedAt); err != nil {
			return nil, xerror.Wrapf(err, xerror.DB, "%s: scan snapshot of %s failed", s.driver, subject)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "%s: iterate snapshots of %s failed", s.driver, subject)
	}
	return snapshots, nil
}

func (s *sqlStore) LastSeq(subject string) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(seq) FROM snapshots WHERE subject = ?", subject).Scan(&seq); err != nil {
		return InvalidSeq, xerror.Wrapf(err, xerror.DB, "%s: query last seq of %s failed", s.driver, subject)
	}

	if !seq.Valid {
		return InvalidSeq, nil
	}
	return seq.Int64, nil
}

func (s *sqlStore) RemoveSubject(subject string) error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE subject = ?", subject); err != nil {
		return xerror.Wrapf(err, xerror.DB, "%s: remove snapshots of %s failed", s.driver, subject)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
