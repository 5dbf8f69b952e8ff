package main

import "kanbo/internal/cli"

func main() {
	cli.Execute()
}
