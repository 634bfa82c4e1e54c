package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"BBS-backend/internal/platform/config"
)

const driverName = "mysql"

// MySQL server error numbers the services translate into API errors.
const (
	errDuplicateEntry   = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
	errLockDeadlock     = 1213
)

const (
	defaultConnMaxLife    = 30 * time.Minute
	defaultConnMaxIdleAge = 5 * time.Minute
)

func DSN(c config.Database) string {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	// updates that change nothing still report the matched row
	mc.ClientFoundRows = true
	mc.Timeout = 3 * time.Second
	mc.ReadTimeout = 5 * time.Second
	mc.WriteTimeout = 5 * time.Second
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func Connect(ctx context.Context, c config.Database) (*sql.DB, error) {
	db, err := sql.Open(driverName, DSN(c))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// keep the pool below the server's max_connections
	maxOpen, maxIdle := c.MaxOpenConns, c.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 40
	}
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen / 4
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(defaultConnMaxLife)
	db.SetConnMaxIdleTime(defaultConnMaxIdleAge)

	return db, nil
}

func mysqlNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func IsDuplicateKey(err error) bool { return mysqlNumber(err) == errDuplicateEntry }

// IsMissingReference reports an insert/update pointing at a parent row that does not exist.
func IsMissingReference(err error) bool {
	n := mysqlNumber(err)
	return n == errNoReferencedRow || n == errNoReferencedRow2
}

// IsReferenced reports a delete blocked by child rows.
func IsReferenced(err error) bool {
	n := mysqlNumber(err)
	return n == errRowIsReferenced || n == errRowIsReferenced2
}

// IsDeadlock reports a transaction InnoDB rolled back to break a lock cycle.
func IsDeadlock(err error) bool { return mysqlNumber(err) == errLockDeadlock }
