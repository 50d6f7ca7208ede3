package main

import "github.com/citynights/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
