package main

import "postsync/cmd"

func main() {
	cmd.Execute()
}
