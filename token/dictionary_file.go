package token

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DictionaryFile is YAML form of static dictionary.
//
//	name: 2/org.example/1
//	signature: 0x5535   # optional, checked against name
//	primary: [INVITE, ACK, ...]
//	secondary: [...]
type DictionaryFile struct {
	Name      string   `yaml:"name"`
	Signature *uint16  `yaml:"signature,omitempty"`
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

// ParseDictionary builds dictionary from YAML data.
func ParseDictionary(data []byte) (*StaticDictionary, error) {
	var f DictionaryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	d, err := NewStaticDictionary(f.Name, f.Primary, f.Secondary)
	if err != nil {
		return nil, err
	}
	if f.Signature != nil && *f.Signature != d.Signature {
		return nil, fmt.Errorf("dictionary %q: signature 0x%04x does not match name signature 0x%04x", f.Name, *f.Signature, d.Signature)
	}
	return d, nil
}

// LoadDictionaryFile reads dictionary from YAML file.
func LoadDictionaryFile(path string) (*StaticDictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}
	d, err := ParseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// NewRegistryFromFiles returns frozen registry with built-in dictionary and
// dictionaries loaded from paths.
func NewRegistryFromFiles(paths ...string) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(DefaultDictionary()); err != nil {
		return nil, err
	}
	for _, p := range paths {
		d, err := LoadDictionaryFile(p)
		if err != nil {
			return nil, err
		}
		if err := r.Register(d); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	r.Freeze()
	return r, nil
}
