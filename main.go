package main

import (
	"github.com/LepistaBioinformatics/classeq2/cli/cmd"
)

func main() {
	cmd.Execute()
}
