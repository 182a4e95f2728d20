package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/awantoch/hello/logger"
)

func main() {
	// Load .env as early as possible!
	_ = godotenv.Load()

	exit(execute(os.Args[1:]))
}

// execute runs the root command with args and returns the process exit code.
// The run logs its own failure; the only failure left by then is a write to
// stdout.
func execute(args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		return 1
	}
	return 0
}
