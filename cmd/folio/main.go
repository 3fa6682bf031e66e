package main

import "github.com/mcoot/folio/internal/cli"

func main() {
	cli.Execute()
}
