// Command idiomget is a small CLI front end over the idiom evaluator: it
// reads a JSON value and a path expression and prints the result of
// running get() against them, the same role cayleyexport/cayleyimport
// play for cayley's own HTTP API.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
