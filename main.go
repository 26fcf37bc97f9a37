package main

import "github.com/vietdv277/amirotate/cmd"

func main() {
	cmd.Execute()
}
