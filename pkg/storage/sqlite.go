package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/selectdb/feed_observer/pkg/xerror"
)

type SQLiteDB struct {
	sqlStore
}

func NewSQLiteDB(dbPath string) (DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "sqlite3: open %s failed", dbPath)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS snapshots (subject TEXT, seq INTEGER, payload TEXT, created_at INTEGER, PRIMARY KEY (subject, seq))"); err != nil {
		db.Close()
		return nil, xerror.Wrap(err, xerror.DB, "sqlite3: create table snapshots failed")
	}

	return &SQLiteDB{sqlStore{db: db, driver: "sqlite3"}}, nil
}
