package main

import "timetrack/cmd/server/cmd"

func main() {
	cmd.Execute()
}
