package main

import (
	"os"

	"github.com/msaldanha/taskflow/cmd"
)

func main() {
	if er := cmd.Execute(); er != nil {
		os.Exit(1)
	}
}
