// Package main is the entry point for the emend CLI.
package main

import "emend.dev/pkg/emend/cmd"

func main() {
	cmd.Execute()
}
