// filepath: cmd/filekit/main.go
package main

import "filekit/internal/cli"

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
