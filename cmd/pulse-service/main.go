// Package main is the pulse-service entry point (HTTP + WebSocket).
package main

import (
	"log"

	"github.com/techwayfit/twf-pulse-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
