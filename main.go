package main

import (
	"github.com/joho/godotenv"

	"github.com/Tiliavir/daily-proof/cmd"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	cmd.Execute()
}
