package main

import "github.com/aimerneige/telegraph2pdf/cmd"

func main() {
	cmd.Execute()
}
