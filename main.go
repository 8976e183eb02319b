package main

import "github.com/notargets/fermi/cmd"

func main() {
	cmd.Execute()
}
