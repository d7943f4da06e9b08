// Package main is the entry point of the voyago application.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"voyago/internal"
)

func main() {
	internal.Init()
}
