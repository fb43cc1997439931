package main

import "team-timeline/cmd"

func main() {
	cmd.Execute()
}
