// Command itmsctl is the operator CLI for the article store.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"

	"github.com/moheuddin/itms/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "itmsctl: %v\n", err)
		os.Exit(1)
	}
}
