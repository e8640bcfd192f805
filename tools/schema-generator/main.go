package main

import (
	"log"
	"os"

	"github.com/grovetools/iniedit/pkg/settings"
)

func main() {
	data, err := settings.SchemaJSON()
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	// Write to the package root
	if err := os.WriteFile("iniedit.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated settings schema at iniedit.schema.json")
}
