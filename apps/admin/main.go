package main

import (
	"fmt"
	"os"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/settings"
	"github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database"
	"github.com/trezcool/gradebook/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(os.Stderr, "ADMIN", conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer db.Close()

	// set up services
	gradingSvc := grading.NewService(sqlxrepos.NewGradingPeriodRepository(db))
	settingsSvc := settings.NewService(sqlxrepos.NewSettingsRepository(db), gradingSvc)

	// start CLI
	cli := commandLine{
		db:          db,
		conf:        conf,
		settingsSvc: settingsSvc,
		in:          os.Stdin,
		out:         os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("%s: %v", os.Args[1], err), err)
		}
		db.Close()
		os.Exit(1)
	}
}
