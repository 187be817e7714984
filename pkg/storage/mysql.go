package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/selectdb/feed_observer/pkg/xerror"
)

type MysqlDB struct {
	sqlStore
}

func NewMysqlDB(host string, port int, user string, password string, database string) (DB, error) {
	dbForDDL, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/", user, password, host, port))
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: open %s@tcp(%s:%d) failed", user, host, port)
	}

	if _, err := dbForDDL.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database)); err != nil {
		dbForDDL.Close()
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: create database %s failed", database)
	}
	dbForDDL.Close()

	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", user, password, host, port, database))
	if err != nil {
		return nil, xerror.Wrapf(err, xerror.DB, "mysql: open in db %s@tcp(%s:%d)/%s failed", user, host, port, database)
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS snapshots (`subject` VARCHAR(512), `seq` BIGINT, `payload` TEXT, `created_at` BIGINT, PRIMARY KEY (`subject`, `seq`))"); err != nil {
		db.Close()
		return nil, xerror.Wrap(err, xerror.DB, "mysql: create table snapshots failed")
	}

	return &MysqlDB{sqlStore{db: db, driver: "mysql"}}, nil
}
