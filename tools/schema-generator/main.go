package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grovetools/plenary/config"
	"github.com/invopop/jsonschema"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "Plenary Configuration"
	schema.Description = "Schema for the 'plenary' extension in grove.yml."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile("plenary.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated plenary schema at plenary.schema.json")
}
