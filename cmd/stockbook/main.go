// Package main provides the stockbook CLI.
package main

import "github.com/mesh-intelligence/stockbook/internal/cli"

func main() {
	cli.Execute()
}
