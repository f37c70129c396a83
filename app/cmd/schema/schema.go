package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ribgsilva/fundoo-notes/persistence/v1/schema"
	"github.com/ribgsilva/fundoo-notes/platform/env"
	"github.com/ribgsilva/fundoo-notes/sys"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
)

func ListCommands() {
	println("Schema Commands")
	println("\tcreate\t\t\t- Creates the notes, collaborators, labels and users tables")
	println("\tdelete\t\t\t- Drops them")
	println("\thelp\t\t\t- Print the commands available")
}

func Run(log *zap.SugaredLogger, options []string) error {
	if len(options) == 0 {
		ListCommands()
		return nil
	}

	var apply func(ctx context.Context, db *sql.DB) error
	switch options[0] {
	case "create":
		apply = schema.Create
	case "delete":
		apply = schema.Drop
	default:
		ListCommands()
		return nil
	}

	db, err := open(log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("could not close db conn gracefully: %s", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sys.Configs.Database.OperationTimeout)
	defer cancel()

	if err := apply(ctx, db); err != nil {
		return fmt.Errorf("schema %s: %w", options[0], err)
	}
	log.Infow("schema", "command", options[0], "status", "done")
	return nil
}

func open(log *zap.SugaredLogger) (*sql.DB, error) {
	sys.Configs.Database.ConnectionURL = env.OrDefault(log, "DATABASE_CONNECTION_URL", "root:admin@tcp(localhost:3306)/note?parseTime=true")
	sys.Configs.Database.PingTimeout = env.DurationDefault(log, "DATABASE_PING_TIMEOUT", "2s")
	sys.Configs.Database.OperationTimeout = env.DurationDefault(log, "DATABASE_OPERATION_TIMEOUT", "30s")

	db, err := sql.Open("mysql", sys.Configs.Database.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("error to connecto to database: %w", err)
	}
	dbCtx, dbCancel := context.WithTimeout(context.Background(), sys.Configs.Database.PingTimeout)
	defer dbCancel()
	if err := db.PingContext(dbCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return db, nil
}
