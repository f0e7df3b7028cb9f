// Package main is the entry point for the fuzzmut CLI.
package main

import "gooze.dev/pkg/fuzzmut/cmd"

func main() {
	cmd.Execute()
}
