// Command fixit is the operator CLI: offline diagnosis and knowledge-file
// validation.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
