package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaDoc is the subset of a generated json schema used for verification
type schemaDoc struct {
	Ref  string               `json:"$ref"`
	Defs map[string]schemaDef `json:"$defs"`
}

type schemaDef struct {
	Properties map[string]schemaProp `json:"properties"`
	Required   []string              `json:"required"`
}

type schemaProp struct {
	Ref  string `json:"$ref"`
	Enum []any  `json:"enum"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema,
// checking required fields and enumerations of every section
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var doc schemaDoc
	if err := json.Unmarshal([]byte(embeddedSchema), &doc); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := doc.check(defName(doc.Ref), configMap, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func (d schemaDoc) check(def string, values map[string]any, path string) error {
	sd, ok := d.Defs[def]
	if !ok {
		return fmt.Errorf("schema definition %q not found", def)
	}

	for _, name := range sd.Required {
		if isZero(values[name]) {
			return fmt.Errorf("%s is required", path+name)
		}
	}

	for name, prop := range sd.Properties {
		val := values[name]
		if prop.Ref != "" {
			nested, ok := val.(map[string]any)
			if !ok {
				continue
			}
			if err := d.check(defName(prop.Ref), nested, path+name+"."); err != nil {
				return err
			}
			continue
		}
		if len(prop.Enum) > 0 && !isZero(val) && !inEnum(val, prop.Enum) {
			return fmt.Errorf("%s must be one of %v, got %v", path+name, prop.Enum, val)
		}
	}
	return nil
}

func defName(ref string) string {
	return strings.TrimPrefix(ref, "#/$defs/")
}

func isZero(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}

func inEnum(v any, enum []any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(v) {
			return true
		}
	}
	return false
}

// GenerateSchema generates a JSON schema for the Config struct,
// only fields tagged as required in jsonschema tags are marked required
func GenerateSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{})
}
