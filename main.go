package main

import (
	"os"

	"ccfront/cmd"
)

func main() {
	d := cmd.NewDriverFromArgs(os.Args[1:])
	os.Exit(d.Run())
}
