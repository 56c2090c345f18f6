package main

import (
	"foodfacts/explorer/internal/cli"
)

func main() {
	cli.Execute()
}
