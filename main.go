package main

import "github.com/semio-community/semio-community.github.io-sub001/cmd"

func main() {
	cmd.Execute()
}
