package template

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/jappaper/pkg/errors"
)

// Encoding is a template file format.
type Encoding string

const (
	TOML Encoding = "toml"
	YAML Encoding = "yaml"
	JSON Encoding = "json"
)

// EncodingFor picks the encoding from a file extension. Unknown extensions
// are TOML.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return TOML
	}
}

// Marshal encodes d.
func Marshal(d *Document, enc Encoding) ([]byte, error) {
	switch enc {
	case YAML:
		return yaml.Marshal(d)
	case JSON:
		return json.MarshalIndent(d, "", "  ")
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// Unmarshal decodes data over the defaults, so omitted settings keep their
// default values.
func Unmarshal(data []byte, enc Encoding) (*Document, error) {
	d := Default()
	var err error
	switch enc {
	case YAML:
		err = yaml.Unmarshal(data, d)
	case JSON:
		err = json.Unmarshal(data, d)
	default:
		_, err = toml.Decode(string(data), d)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode %s template", enc)
	}
	d.SetDefaults()
	return d, nil
}

// Load reads a template file, picking the format from its extension, and
// validates it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s", path)
		}
		return nil, err
	}
	d, err := Unmarshal(data, EncodingFor(path))
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Save writes d to path in the format its extension selects.
func Save(path string, d *Document) error {
	data, err := Marshal(d, EncodingFor(path))
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(fs.FileMode(0o644)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
