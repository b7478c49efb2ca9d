package main

import (
	"os"

	"github.com/Mahwas/Cognito/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
