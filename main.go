package main

import "github.com/boomerverse/boomer/cmd"

func main() {
	cmd.Execute()
}
