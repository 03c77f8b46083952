// Package yaml loads firedoc configuration files.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/firedoc"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path into cfg. Keys absent from the
// file leave cfg unchanged, so cfg should already hold defaults.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot
// be parsed or names an unknown key.
func LoadConfig(path string, cfg *firedoc.Config) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return firedoc.Errorf(firedoc.ENOTFOUND, "config file %s not found", path)
	} else if err != nil {
		return firedoc.Errorf(firedoc.EIO, "opening config file %s: %v", path, err)
	}
	defer f.Close()

	return DecodeConfig(f, cfg)
}

// DecodeConfig decodes YAML from r into cfg. An empty document is not
// an error.
func DecodeConfig(r io.Reader, cfg *firedoc.Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return firedoc.Errorf(firedoc.EINVALID, "invalid config: %v", err)
	}
	return nil
}
