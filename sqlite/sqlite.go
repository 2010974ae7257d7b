package sqlite

import (
	"fmt"

	"github.com/curtisnewbie/timesplit/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Create new SQLite connection.
func NewConn(path string, wal bool) (*gorm.DB, error) {
	util.Infof("Connecting to SQLite database '%s', enable WAL: %v", path, wal)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite, %w", err)
	}

	tx, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect SQLite, %w", err)
	}

	// make sure the handle is actually connected
	if err = tx.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite, %w", err)
	}
	util.Infof("SQLite connected: '%s'", path)

	// https://www.sqlite.org/pragma.html#pragma_journal_mode
	if wal {
		var mode string
		if err := db.Raw("PRAGMA journal_mode=WAL").Scan(&mode).Error; err != nil {
			return db, fmt.Errorf("failed to enable WAL mode, %w", err)
		}
		util.Debugf("Enabled SQLite WAL mode, result: %v", mode)
	}

	if util.IsDebugLevel() {
		return db.Debug(), nil
	}
	return db, nil
}
