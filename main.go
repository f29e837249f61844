package main

import "Inshpho/cmd"

func main() {
	cmd.Execute()
}
