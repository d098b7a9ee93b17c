package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/salesreport/backend/internal/interfaces/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewCLI(cli.Options{Output: os.Stdout}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
