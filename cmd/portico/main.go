package main

import (
	"log"

	"github.com/portico-home/portico/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ portico failed to start: %v", err)
	}
}
