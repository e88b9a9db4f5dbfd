package main

import "github.com/riakhq/riak-go-client/cmd"

func main() {
	cmd.Execute()
}
