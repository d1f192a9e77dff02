package main

import "github.com/BruksfildServices01/table-reservations/internal/cli"

func main() {
	cli.Execute()
}
