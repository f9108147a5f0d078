// Command brngtool is a development and inspection CLI over the brng
// module's three BRNG algorithms: stream raw words, or dump a seed's
// first draws plus its JSON snapshot. It is a convenience built on top
// of the library, not a redefinition of the library's own (CLI-less)
// contract.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
