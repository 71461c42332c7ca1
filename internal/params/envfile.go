package params

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/vvka-141/buildmeta/internal/xmlpath"
)

// ParseEnvFile parses property file content in .env format.
// Comments, quoting and export prefixes follow godotenv; every key must be a
// valid element name.
func ParseEnvFile(content []byte) (map[string]string, error) {
	result, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("invalid property file: %w", err)
	}
	for key := range result {
		if key == "" {
			return nil, fmt.Errorf("invalid property file: empty key")
		}
		if err := xmlpath.CheckName(key); err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
	}
	return result, nil
}
