package main

import "github.com/angeleecka/linkapp/cmd"

func main() {
	cmd.Execute()
}
