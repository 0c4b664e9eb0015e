package main

import "github.com/Tiliavir/trivial-meal-tracker/cmd"

func main() {
	cmd.Execute()
}
