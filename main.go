package main

import (
	"github.com/streamalong/cli/cmd"
	"github.com/streamalong/cli/internal/logging"
)

func main() {
	// Initialize logging
	logging.Init()
	cmd.Execute()
}
