package main

import "github.com/codetesla51/attemptguard/cli"

func main() {
	cli.Execute()
}
