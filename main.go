package main

import (
	"os"

	"github.com/cristianadrielbraun/qrframe/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
