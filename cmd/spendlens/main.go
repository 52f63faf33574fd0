package main

import (
	"github.com/spendlens/spendlens/internal/cli"
)

func main() {
	cli.Execute()
}
