package main

import (
	"github.com/vytor/dailydle/internal/config"
	"github.com/vytor/dailydle/internal/db"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/repository"
	"github.com/vytor/dailydle/internal/repository/memory"
	"github.com/vytor/dailydle/internal/repository/sqlite"
)

// openStore opens the configured store. The returned close func is never nil.
func openStore(cfg config.Config, log *logger.Logger) (repository.KeyValueStore, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using in-memory store, progress is lost on restart")
		return memory.NewKVRepository(), func() {}, nil
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, func() {}, err
	}
	closeStore := func() {
		log.Debug("closing database connection")
		if err := database.Close(); err != nil {
			log.Error("failed to close database: %v", err)
		}
	}
	return sqlite.NewKVRepository(database.DB), closeStore, nil
}
