package main

import "clwrapped/cmd"

func main() {
	cmd.Execute()
}
