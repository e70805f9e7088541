package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
)

func main() {
	command := NewRenderCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mustache: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
