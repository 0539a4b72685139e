package main

import "github.com/ssargent/trackvault/cmd/trackvault/cmd"

func main() {
	cmd.Execute()
}
