package main

import (
	"log"

	"LocalCanvas/internal/ui"
)

func main() {
	log.Println("Starting LocalCanvas")
	ui.RunApp()
}
