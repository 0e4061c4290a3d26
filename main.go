package main

import "github.com/douhashi/gzlabeler/cmd"

func main() {
	cmd.Execute()
}
