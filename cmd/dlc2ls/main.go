package main

import "dlc2ls/cmd/dlc2ls/cmd"

func main() {
	cmd.Execute()
}
