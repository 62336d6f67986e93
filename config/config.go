// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	fstabgen "github.com/wastore/go-fstabgen"
	"github.com/wastore/go-fstabgen/fs/spec"
)

const (
	// DefaultListen is the address the form is served on.
	DefaultListen = "127.0.0.1:8080"
)

// Config holds the settings shared by the command line and the web form.
type Config struct {
	Policy      string   `yaml:"policy"`
	Filesystems []string `yaml:"filesystems"`
	Listen      string   `yaml:"listen"`
	Debug       bool     `yaml:"debug"`
}

// Default returns the built in configuration.
func Default() *Config {
	fs := make([]string, len(spec.Filesystems))
	copy(fs, spec.Filesystems)
	return &Config{
		Policy:      fstabgen.PolicyStrict.String(),
		Filesystems: fs,
		Listen:      DefaultListen,
	}
}

// Parse reads a YAML document on top of the defaults. Keys missing from
// the document keep their default value.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

func (cfg *Config) check() error {
	if _, err := fstabgen.ParsePolicy(cfg.Policy); err != nil {
		return err
	}
	var fs []string
	for _, name := range cfg.Filesystems {
		if name = strings.TrimSpace(name); name != "" {
			fs = append(fs, name)
		}
	}
	if len(fs) == 0 {
		return errors.New("no filesystems configured")
	}
	cfg.Filesystems = fs
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	return nil
}

// BuilderPolicy returns the configured validation policy.
func (cfg *Config) BuilderPolicy() fstabgen.Policy {
	p, _ := fstabgen.ParsePolicy(cfg.Policy)
	return p
}

func (cfg *Config) String() string {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err.Error()
	}
	return string(b)
}
