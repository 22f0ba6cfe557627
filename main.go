package main

import (
	"log"

	"github.com/transitflow/depotplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
