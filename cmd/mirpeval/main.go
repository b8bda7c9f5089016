// cmd/mirpeval/main.go
package main

import (
	cmd "github.com/mwiater/mirpeval/internal/cli"
)

// main starts the mirpeval CLI application by delegating to the
// cobra root command defined in the mirpeval package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
