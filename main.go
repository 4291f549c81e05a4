// Package main is the entry point for the adobededrmtools binary.
// All command-line parsing, config-file loading, and environment-variable
// overrides are handled by the cmd/ package via Cobra and Viper. main()
// simply delegates to cmd.Execute().
package main

import "github.com/ntqbit/adobededrmtools/cmd"

func main() { cmd.Execute() }
