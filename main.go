package main

import "github.com/mabhi256/classgraph/cmd"

func main() {
	cmd.Execute()
}
