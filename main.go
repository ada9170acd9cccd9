package main

import (
	"os"

	"depreciation-calculator/cli"
)

func main() {
	os.Exit(cli.Execute())
}
