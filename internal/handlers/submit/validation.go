// internal/handlers/submit/validation.go
package submit

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchema mirrors the form contract: five required free-text fields, two
// optional ones, and the honeypot. The honeypot emptiness check happens in the
// handler so bots get the generic rejection rather than a field error.
const inputSchema = `{
	"type": "object",
	"properties": {
		"customerName":  {"type": "string", "minLength": 1, "maxLength": 200},
		"phone":         {"type": "string", "minLength": 1, "maxLength": 50},
		"postcode":      {"type": "string", "minLength": 1, "maxLength": 20},
		"baseAddress":   {"type": "string", "minLength": 1, "maxLength": 500},
		"detailAddress": {"type": "string", "maxLength": 500},
		"fullAddress":   {"type": "string", "minLength": 1, "maxLength": 1000},
		"request":       {"type": "string", "maxLength": 2000},
		"website":       {"type": "string"}
	},
	"required": ["customerName", "phone", "postcode", "baseAddress", "fullAddress"]
}`

var compiledSchema = gojsonschema.NewStringLoader(inputSchema)

// validatePayload checks the raw request body against the form schema and
// returns a detail string listing every violation.
func validatePayload(body []byte) (bool, string, error) {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return false, "", fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return true, "", nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return false, strings.Join(details, "; "), nil
}
