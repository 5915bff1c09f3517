package main

import "github.com/mouse-blink/casegen/cmd"

func main() {
	cmd.Execute()
}
