package main

import "github.com/moyu-x/fileguard/cmd"

func main() {
	cmd.Execute()
}
