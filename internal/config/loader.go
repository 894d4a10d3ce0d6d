package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Load reads configuration with the precedence defaults < YAML file <
// environment variables. configPath may be empty, in which case only
// defaults and the environment apply.
//
// Environment variables are uppercased with an underscore separating the
// section from the field name:
//
//	OPENAI_API_KEY  -> openai.api_key
//	SERVER_PORT     -> server.port
//	LOG_LEVEL       -> log.level
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", configPath)
		}

		err = k.Load(rawbytes.Provider(content), yaml.Parser())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load config file %s", configPath)
		}
	}

	err := k.Load(env.Provider("", ".", envToKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load environment variables")
	}

	cfg := Default()

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// envSections are the config sections environment variables may target.
// Anything else in the process environment is ignored, so unrelated
// variables cannot override config keys.
var envSections = map[string]struct{}{
	"server":   {},
	"openai":   {},
	"serper":   {},
	"pipeline": {},
	"log":      {},
}

// envToKey maps an environment variable name to a config key: the first
// underscore separates the section, the rest is the field name. Variables
// outside the known sections map to the empty key and are skipped.
//
//	SERVER_RUN_TIMEOUT -> server.run_timeout
func envToKey(s string) string {
	lower := strings.ToLower(s)

	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return ""
	}

	if _, ok := envSections[parts[0]]; !ok {
		return ""
	}

	return parts[0] + "." + parts[1]
}
