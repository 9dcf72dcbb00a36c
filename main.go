package main

import "github.com/endorses/cdcat/cmd"

func main() {
	cmd.Execute()
}
