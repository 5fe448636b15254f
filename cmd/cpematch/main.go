package main

import (
	"github.com/anchore/cpematch/cmd"
)

func main() {
	cmd.Execute()
}
