package main

import "github.com/dt-pm-tools/jira-stories/cmd"

func main() {
	cmd.Execute()
}
