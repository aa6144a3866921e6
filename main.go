package main

import (
	"github.com/skidmark-racing/chorley/cmd"
)

func main() {
	cmd.Execute()
}
