package main

import "github.com/KaramelBytes/cacscope/cmd"

func main() {
	cmd.Execute()
}
