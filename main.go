package main

import "github.com/jsphweid/mididiff/cmd"

func main() {
	cmd.Execute()
}
