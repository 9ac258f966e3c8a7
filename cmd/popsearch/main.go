package main

import (
	"pop-search/cmd/popsearch/cmd"
)

func main() {
	cmd.Execute()
}
