package main

import (
	"fmt"
	"overseer/cmd"
)

var (
	version string
	commit  string
)

func main() {
	version := fmt.Sprintf("%s-%s", version, commit)
	cmd.Execute(version)
}
