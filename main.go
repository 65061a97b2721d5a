package main

import "gosurvey/internal/cli"

func main() {
	cli.Execute()
}
