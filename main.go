// Package main is the entry point for the guut CLI.
package main

import "guut.dev/pkg/guut/cmd"

func main() {
	cmd.Execute()
}
