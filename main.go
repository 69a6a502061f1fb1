package main

import "github.com/naka-gawa/triage-scan/cmd"

func main() {
	cmd.Execute()
}
