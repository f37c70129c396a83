package main

import (
	"fmt"
	"os"

	"github.com/ribgsilva/fundoo-notes/app/cmd/schema"
	"github.com/ribgsilva/fundoo-notes/platform/env"
	"github.com/ribgsilva/fundoo-notes/platform/logger"
)

func usage() {
	println("Usage: cmd <group> [command]")
	println()
	schema.ListCommands()
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	log, err := logger.New("Notes-CMD")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()
	env.Load(log, ".env")

	switch os.Args[1] {
	case "schema":
		if err := schema.Run(log, os.Args[2:]); err != nil {
			log.Errorw("schema", "ERROR", err)
			_ = log.Sync()
			os.Exit(1)
		}
	default:
		usage()
	}
}
