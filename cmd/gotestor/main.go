package main

import "github.com/dbsmedya/gotestor/cmd/gotestor/cmd"

func main() {
	cmd.Execute()
}
