package main

import (
	"os"

	"github.com/avatimes/avatimes/avatimesservice"
)

func main() {
	if err := avatimesservice.Run(); err != nil {
		os.Exit(1)
	}
}
