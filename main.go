package main

import "github.com/gaurav-prasanna/smarturl/cmd"

func main() {
	cmd.Execute()
}
