package main

import "enumeration-report/cmd"

func main() {
	cmd.Execute()
}
