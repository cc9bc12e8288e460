// Package main is the entry point for the hlsweep CLI.
package main

import "hlsweep.dev/pkg/hlsweep/cmd"

func main() {
	cmd.Execute()
}
