package main

import "github.com/nathanhack/mimo/cmd"

func main() {
	cmd.Execute()
}
