package snmpc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults are the client parameters a configuration file can pre-seed.
// Command-line flags always override them.
type Defaults struct {
	Community string `yaml:"community"`
	Version   string `yaml:"version"` // "1" or "2c"
	Timeout   int    `yaml:"timeout"` // seconds
	Retries   int    `yaml:"retries"`
}

// builtinDefaults mirror the CLI defaults of the common options.
func builtinDefaults() Defaults {
	return Defaults{
		Community: "public",
		Version:   "2c",
		Timeout:   1,
		Retries:   5,
	}
}

// LoadDefaults reads client defaults from the first configuration file
// found: $SNMPC_CONF, then ~/.snmp/snmpc.yml, then /etc/snmp/snmpc.yml.
// Absent files yield the builtin defaults; a file that exists but does not
// parse or validate is an error.
func LoadDefaults() (Defaults, error) {
	for _, path := range configFiles() {
		d, err := loadDefaultsFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Defaults{}, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	}
	return builtinDefaults(), nil
}

func configFiles() []string {
	var paths []string
	if p := os.Getenv("SNMPC_CONF"); p != "" {
		paths = append(paths, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".snmp", "snmpc.yml"))
	}
	return append(paths, "/etc/snmp/snmpc.yml")
}

func loadDefaultsFile(path string) (Defaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return Defaults{}, err
	}
	defer f.Close()

	d := builtinDefaults()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Defaults{}, err
	}
	if err := d.validate(); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

func (d Defaults) validate() error {
	if d.Version != "1" && d.Version != "2c" {
		return fmt.Errorf("version must be 1 or 2c, not %q", d.Version)
	}
	if d.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second")
	}
	if d.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	return nil
}

// SessionVersion maps the configured version string to the wire version.
func (d Defaults) SessionVersion() Version {
	if d.Version == "1" {
		return V1
	}
	return V2c
}
