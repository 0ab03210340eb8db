package main

import "github.com/notewell/ms-notes-auth/cmd"

func main() {
	cmd.Execute()
}
