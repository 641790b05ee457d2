package main

import "github.com/meridian-labs/leadscope/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
