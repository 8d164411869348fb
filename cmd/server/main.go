package main

import (
	"github.com/osint-hub/backend/internal/server"
	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/logger"
	"github.com/osint-hub/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Service: "server",
		Debug:   util.GetEnvBool("DEBUG", false),
		Level:   util.GetEnv("LOG_LEVEL"),
		Format:  util.GetEnvString("LOG_FORMAT", "text"),
	})
	logger.Init(consoleLogger)

	server.Init()
}
