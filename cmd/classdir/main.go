package main

import "github.com/afriesen/classdir/internal/cli"

func main() {
	cli.Execute()
}
