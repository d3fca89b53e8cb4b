package main

import (
	"github.com/vietddude/interact/internal/cli"
)

func main() {
	cli.Execute()
}
