package main

import (
	"fmt"
	"os"

	"github.com/anonto42/warbler/backend/pkg/config"
	"github.com/anonto42/warbler/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogLevel, os.Stderr)

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
