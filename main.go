package main

import "github.com/naka-gawa/contrib-report/cmd"

func main() {
	cmd.Execute()
}
