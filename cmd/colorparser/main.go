package main

import "github.com/MeKo-Tech/colorparser/internal/cmd"

func main() {
	cmd.Execute()
}
