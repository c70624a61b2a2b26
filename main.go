package main

import "github.com/techcorp/internal-tools/cmd"

func main() {
	cmd.Execute()
}
