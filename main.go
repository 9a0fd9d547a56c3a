package main

import (
	"dayflow/core/logger"
	"dayflow/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
