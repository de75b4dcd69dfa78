package main

import "github.com/skirila/fbxbatch/internal/cmd"

func main() {
	cmd.Parse()
}
