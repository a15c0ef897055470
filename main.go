package main

import "github.com/engrsakib/qa-with-go/commands"

func main() {
	commands.Execute()
}
