package main

import "github.com/jcabot/uml-tools-dashboard/cmd"

func main() {
	cmd.Execute()
}
