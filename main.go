package main

import "github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/cmd"

func main() {
	cmd.Execute()
}
