package main

import "github.com/jiashen-meow/feelingdiary/cmd"

func main() {
	cmd.Execute()
}
