package main

import "github.com/brewersproject/lineage/cmd/lineage/cmd"

func main() {
	cmd.Execute()
}
