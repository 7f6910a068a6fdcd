package main

import (
	"os"

	"github.com/nevindra/fiscus/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
