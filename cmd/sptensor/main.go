// Command sptensor loads, generates and combines sparse tensors.
//
//	sptensor gen --density 0.05 -o a.coo 10 10
//	sptensor info a.coo
//	sptensor trace a.coo 0 1
//	sptensor contract a.coo 1 b.coo 0 -o c.json.zst
//	sptensor compare a.coo 1 b.coo 0
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
