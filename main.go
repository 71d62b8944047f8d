package main

import (
	"os"

	"github.com/aholstenson/gocurl/internal/runner"
)

func main() {
	os.Exit(runner.Run())
}
