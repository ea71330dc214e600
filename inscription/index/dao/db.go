package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/go-sql-driver/mysql"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/log"
	gormMysqlDriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is a struct that embeds gorm.DB to provide additional database functionality.
type DB struct {
	*gorm.DB
}

// DBOptions is a struct that holds the configuration options for the database.
type DBOptions struct {
	addr        string
	user        string
	password    string
	dbName      string
	dialTimeout time.Duration

	log               btclog.Logger
	autoMigrateTables []interface{}
}

// DBOption is a function type that modifies DBOptions.
type DBOption func(*DBOptions)

// WithAddr returns a DBOption that sets the address of the database.
func WithAddr(addr string) DBOption {
	return func(o *DBOptions) {
		o.addr = addr
	}
}

// WithUser returns a DBOption that sets the user of the database.
func WithUser(user string) DBOption {
	return func(o *DBOptions) {
		o.user = user
	}
}

// WithPassword returns a DBOption that sets the password of the database.
func WithPassword(password string) DBOption {
	return func(o *DBOptions) {
		o.password = password
	}
}

// WithDBName returns a DBOption that sets the name of the database.
func WithDBName(dbName string) DBOption {
	return func(o *DBOptions) {
		o.dbName = dbName
	}
}

// WithDialTimeout bounds how long NewDB waits for the server to accept connections.
func WithDialTimeout(timeout time.Duration) DBOption {
	return func(o *DBOptions) {
		o.dialTimeout = timeout
	}
}

// WithLogger returns a DBOption that sets the logger of the database.
func WithLogger(log btclog.Logger) DBOption {
	return func(o *DBOptions) {
		o.log = log
	}
}

// WithAutoMigrateTables returns a DBOption that sets the tables to be auto migrated in the database.
func WithAutoMigrateTables(tables ...interface{}) DBOption {
	return func(o *DBOptions) {
		o.autoMigrateTables = tables
	}
}

// Transaction is a method on DB that executes a function within a database transaction.
func (d *DB) Transaction(fn func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		d := &DB{DB: tx}
		return fn(d)
	})
}

// DSN formats the go-sql-driver data source name of dbName.
func (o *DBOptions) DSN(dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = o.user
	cfg.Passwd = o.password
	cfg.Net = "tcp"
	cfg.Addr = o.addr
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// NewDB is a function that creates a new DB instance with the provided options.
// It waits for the server while it refuses connections, creates the database
// and migrates the tables.
func NewDB(opts ...DBOption) (*DB, error) {
	options := &DBOptions{
		addr:        constants.DefaultDBAddr,
		user:        constants.DefaultDBUser,
		password:    constants.DefaultDBPass,
		dbName:      constants.DefaultDBName,
		dialTimeout: 30 * time.Second,
		log:         log.Gorm,
	}
	for _, opt := range opts {
		opt(options)
	}

	db, err := openWhenReady(options.DSN(""), options.dialTimeout)
	if err != nil {
		return nil, err
	}

	createDb := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4;", options.dbName)
	if err = db.Exec(createDb).Error; err != nil {
		return nil, fmt.Errorf("gorm create database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	db, err = gorm.Open(gormMysqlDriver.Open(options.DSN(options.dbName)), &gorm.Config{
		Logger: &GormLogger{Logger: options.log},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	if err := db.AutoMigrate(options.autoMigrateTables...); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm db: %w", err)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(50)

	return &DB{
		DB: db,
	}, nil
}

func openWhenReady(dsn string, timeout time.Duration) (*gorm.DB, error) {
	deadline := time.After(timeout)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		db, err := gorm.Open(gormMysqlDriver.Open(dsn), &gorm.Config{Logger: logger.Discard})
		if err == nil {
			return db, nil
		}
		if !connectionRefused(err) {
			return nil, err
		}
		select {
		case <-deadline:
			return nil, fmt.Errorf("gorm open timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func connectionRefused(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var syscallErr *os.SyscallError
	return errors.As(opErr.Err, &syscallErr) && errors.Is(syscallErr.Err, syscall.ECONNREFUSED)
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GormLogger is a struct that embeds btclog.Logger to provide additional logging functionality.
type GormLogger struct {
	btclog.Logger
}

// LogMode is a method on GormLogger that sets the log level.
func (g *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	switch level {
	case logger.Silent:
		g.Logger.SetLevel(btclog.LevelOff)
	case logger.Error:
		g.Logger.SetLevel(btclog.LevelError)
	case logger.Warn:
		g.Logger.SetLevel(btclog.LevelWarn)
	case logger.Info:
		g.Logger.SetLevel(btclog.LevelInfo)
	}
	return g
}

func (g *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Infof(msg, data...)
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Warnf(msg, data...)
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Errorf(msg, data...)
}

// Trace logs every statement at trace level and failed ones at error level.
// Missing records are expected by the query helpers and are not failures.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.Logger.Level() > btclog.LevelTrace && (err == nil || errors.Is(err, gorm.ErrRecordNotFound)) {
		return
	}
	sql, rows := fc()
	sqlInfo := struct {
		Elapsed int64  `json:"elapsed_ms"`
		Rows    int64  `json:"rows"`
		Err     string `json:"err,omitempty"`
		Sql     string `json:"sql"`
	}{
		Elapsed: time.Since(begin).Milliseconds(),
		Rows:    rows,
		Sql:     sql,
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sqlInfo.Err = err.Error()
		sqlInfoByte, _ := json.Marshal(sqlInfo)
		g.Logger.Error(string(sqlInfoByte))
		return
	}
	sqlInfoByte, _ := json.Marshal(sqlInfo)
	g.Logger.Trace(string(sqlInfoByte))
}
