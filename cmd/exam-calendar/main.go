package main

import "github.com/pfrederiksen/exam-calendar/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
