package clientcfg

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var defaultPrinter = message.NewPrinter(language.English)

// ValidateBytes checks raw YAML against the config schema and returns
// human-readable problems, one per offending field.
func ValidateBytes(data []byte) []string {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("invalid YAML: %v", err)}
	}
	if doc == nil {
		return nil
	}

	schema, err := compileSchema()
	if err != nil {
		return []string{fmt.Sprintf("internal schema error: %v", err)}
	}

	if err := schema.Validate(convertToJSONCompatible(doc)); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return collectSchemaErrors(ve)
		}
		return []string{err.Error()}
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchemaJSON))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("config-schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("config-schema.json")
}

// collectSchemaErrors flattens a validation error tree into leaf messages
// prefixed with the offending field path.
func collectSchemaErrors(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		msg := ve.ErrorKind.LocalizedString(defaultPrinter)
		if len(ve.InstanceLocation) > 0 {
			return []string{fmt.Sprintf("%s: %s", strings.Join(ve.InstanceLocation, "."), msg)}
		}
		return []string{msg}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, collectSchemaErrors(cause)...)
	}
	return out
}

// convertToJSONCompatible rewrites yaml.Unmarshal output into the value
// shapes the schema validator expects.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = convertToJSONCompatible(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = convertToJSONCompatible(item)
		}
		return s
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}
