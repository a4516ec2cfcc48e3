package main

import "github.com/nate-a11y/AED-Empire/internal/cli"

func main() {
	cli.Execute()
}
