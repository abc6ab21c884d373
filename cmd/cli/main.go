// datefind - natural-language date and time extraction.
//
// datefind finds phrases such as "tomorrow at noon" or "в пятницу" in text
// and resolves them to concrete timestamps.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/ccollicutt/datefind/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
