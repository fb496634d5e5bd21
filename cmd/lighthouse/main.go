// Command lighthouse is a terminal companion for hard nights.
//
// Usage:
//
//	lighthouse [flags]
//	lighthouse chat [--input file] [--transcript format]
//	lighthouse affirm
//	lighthouse checkin
//	lighthouse models [--filter text]
//
// Run "lighthouse --help" for details.
package main

import "github.com/tmc/lighthouse/internal/cli"

func main() {
	cli.Execute()
}
