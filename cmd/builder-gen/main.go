// builder-gen generates fluent builder types for Go structs.
//
// Usage:
//
//	//go:generate builder-gen
//	type Command struct { ... }
//
// Or with explicit type:
//
//	//go:generate builder-gen --type=Command
//
// Field directives are read from the builder struct tag or from
// "+builder:" comment markers:
//
//	Args []string `builder:"each=Arg,default=[]string{}"`
//	// +builder:default=[]string{"RUST_LOG=info"}
//	Env []string
//
// Flags:
//
//	--type              The name of the struct type (inferred if directive is above the type)
//	--file              Source file (default: $GOFILE)
//	--output            Output directory for generated files (default: same as source)
//	--package           Package name for generated files (default: same as source)
//	--optional-wrapper  Type name recognised as an optional wrapper (default: Option)
//	--sequence-wrapper  Type name recognised as a sequence wrapper (default: Seq)
//	--stdout            Print the generated code instead of writing a file
//	--log-level         debug, info, warn or error (default: info)
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
