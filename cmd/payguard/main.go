package main

import "github.com/vietddude/payguard/internal/cli"

func main() {
	cli.Execute()
}
