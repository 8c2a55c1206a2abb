package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/educamais/educamais/apps/di"
	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/teacher"
	logsvc "github.com/educamais/educamais/services/logger"
	"github.com/educamais/educamais/storage/database"
	sqlxdb "github.com/educamais/educamais/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger(conf, "admin"), conf)
	defer logger.Sync()

	// set up storage; migrations need the bare connection, so postgres is not migrated up here
	var (
		db *sql.DB
		gw core.Gateway
	)
	if conf.GatewayDriver == di.DriverPostgres {
		sqlDB, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		defer sqlDB.Close()
		db, gw = sqlDB.DB, sqlxdb.NewGateway(sqlDB)
	} else {
		storage, err := di.OpenStorage(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
		}
		defer storage.Close()
		gw = storage.Gateway
	}

	translator := core.NewTranslator()
	validate := core.NewValidate(translator)
	teacher.InitValidators(validate, translator)
	core.ParseEmailTemplates(logger)

	cli := commandLine{
		db:         db,
		teacherSvc: teacher.NewService(gw, di.NewEmailService(conf, logger), validate),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			if fldErrs, ok := core.TranslateErrors(err, translator); ok {
				for fld, msg := range fldErrs {
					fmt.Fprintf(os.Stderr, "%s: %s\n", fld, msg)
				}
			} else {
				fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
			}
		}
		logger.Sync()
		os.Exit(1)
	}
}
