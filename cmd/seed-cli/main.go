package main

import "wallet-seed/cmd/seed-cli/cmd"

func main() {
	cmd.Execute()
}
