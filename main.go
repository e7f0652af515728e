package main

import (
	"github.com/rtsim/rtsim/cmd"
)

func main() {
	cmd.Execute()
}
