package main

import "github.com/naka-gawa/w3c-ie-stats/cmd"

func main() {
	cmd.Execute()
}
