// Command gentry stores and inspects typed feed entries.
package main

import "github.com/mesh-intelligence/gentry/internal/cli"

func main() {
	cli.Execute()
}
