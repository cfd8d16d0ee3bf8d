package config

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// checksSchemaFS contains the embedded JSON schema for the checks section.
//
//go:embed checks-schema.json
var checksSchemaFS embed.FS

// ErrChecksSchema indicates the checks section failed schema validation.
var ErrChecksSchema = errors.New("invalid checks configuration")

// validateChecksSection validates the raw checks section against the
// embedded schema. Check property values are restricted to booleans,
// integers and strings so they survive the trip into Check.Configure.
func validateChecksSection(section map[string]any) error {
	schemaBytes, readErr := checksSchemaFS.ReadFile("checks-schema.json")
	if readErr != nil {
		log.Panicf("config: embedded checks schema missing: %v", readErr)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	sectionLoader := gojsonschema.NewGoLoader(section)

	result, validateErr := gojsonschema.Validate(schemaLoader, sectionLoader)
	if validateErr != nil {
		return fmt.Errorf("validate checks section: %w", validateErr)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrChecksSchema, strings.Join(details, "; "))
}
