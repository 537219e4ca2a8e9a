package main

import "github.com/rustyeddy/payments/internal/cli"

func main() {
	cli.Execute()
}
