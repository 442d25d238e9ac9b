package main

import "github.com/fiffeek/displayflip/cmd"

func main() {
	cmd.Execute()
}
