package main

import "github.com/rustyeddy/candlescope/internal/cli"

func main() {
	cli.Execute()
}
