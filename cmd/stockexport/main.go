// Package main is the entry point for the stockexport CLI.
package main

import (
	"github.com/cafestock/cafestock-backend/internal/cli"
)

func main() {
	cli.Execute()
}
