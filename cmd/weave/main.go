package main

import (
	"github.com/rzbill/weave/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
