package mysql

import (
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/frain-dev/partrotate/config"
)

const pkgName = "mysql"

type Mysql struct {
	dbx *sqlx.DB
}

// NewDB opens the session a maintenance run shares across every target.
// No default schema is selected; every statement qualifies its table as
// database.table.
func NewDB(cfg config.DatabaseConfiguration) (*Mysql, error) {
	opTimeout := time.Duration(cfg.OpTimeoutSeconds) * time.Second

	dsn := mysqldriver.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dsn.Timeout = opTimeout
	dsn.ReadTimeout = opTimeout
	dsn.WriteTimeout = opTimeout

	db, err := sqlx.Connect("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("[%s]: failed to open database - %v", pkgName, err)
	}

	return &Mysql{dbx: db}, nil
}

func (m *Mysql) GetDB() *sqlx.DB {
	return m.dbx
}

func (m *Mysql) Close() error {
	return m.dbx.Close()
}
