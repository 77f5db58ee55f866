package main

import (
	"github.com/flightlink/msp/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	Execute()
}
