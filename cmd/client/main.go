package main

import "timetrack/cmd/client/cmd"

func main() {
	cmd.Execute()
}
