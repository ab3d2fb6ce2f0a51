package main

import (
	"os"

	"github.com/darekkay/hn-popularity-contest-data/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
