package main

import (
	"github.com/idleman/staabler/cmd/staabler/cmd"
	"github.com/idleman/staabler/pkg/di"
)

func main() {
	container := di.NewContainer()
	cmd.SetContainer(container)
	cmd.Execute()
}
