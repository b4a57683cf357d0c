// Synx parses, prints and expands derive attributes in Rust source files.
//
// Usage:
//
//	# Run the built-in and configured derives over a file
//	synx expand src/model.rs src/model.expanded.rs
//
//	# Normalise a file in place
//	synx fmt -w src/lib.rs
//
//	# Check that a type parses
//	synx parse --rule type types.txt
//
//	# Re-expand whenever the source changes
//	synx watch src/model.rs src/model.expanded.rs
package main

import "os"

func main() {
	os.Exit(Execute())
}
