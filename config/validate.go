package config

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/awantoch/hello/constants"
)

//go:embed hello.config.schema.json
var schemaJSON []byte

// Validate runs JSON-Schema validation of a raw JSON config document against
// the embedded schema.
func Validate(data []byte) error {
	schema, err := jsonschema.CompileString(constants.ConfigSchemaFile, string(schemaJSON))
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
