package main

import "github.com/papapumpkin/vcustomizer/cmd"

func main() {
	cmd.Execute()
}
