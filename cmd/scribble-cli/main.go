package main

import "scribble/cmd/scribble-cli/cmd"

func main() {
	cmd.Execute()
}
