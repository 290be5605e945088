package main

import "github.com/chrisdamba/nutritrack/cmd"

func main() {
	cmd.Execute()
}
