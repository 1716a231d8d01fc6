package main

import "github.com/serob111/pharmtest-sub000/cmd/pharmtest/cmd"

func main() {
	cmd.Execute()
}
