package main

import "github.com/chriserin/gherkinstub/cmd"

func main() {
	cmd.Execute()
}
