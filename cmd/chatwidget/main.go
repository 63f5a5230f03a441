package main

import (
	"fmt"
	"os"

	"chatwidget/cmd/chatwidget/cmds"
)

func main() {
	if err := cmds.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
