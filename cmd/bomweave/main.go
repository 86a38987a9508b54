package main

import "github.com/bomweave/bomweave/cmd"

func main() {
	cmd.Execute()
}
