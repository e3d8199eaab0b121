package main

import (
	"github.com/crimson-sun/sawmill/internal/cmd"

	// Register connector implementations.
	_ "github.com/crimson-sun/sawmill/internal/connector/beehive"
	_ "github.com/crimson-sun/sawmill/internal/connector/localdir"
)

func main() {
	cmd.Execute()
}
