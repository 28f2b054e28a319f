package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFile is read at startup when present. Command line flags still win over it.
const EnvFile = "ghosthunt.env"

const envPrefix = "GHOSTHUNT_"

// LoadEnv applies GHOSTHUNT_* settings from a dotenv file. GHOSTHUNT_ATTACK_SOUND sets -attack-sound and so on.
// A missing file is not an error.
func (c *Config) LoadEnv(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	return c.applyEnv(vars)
}

func (c *Config) applyEnv(vars map[string]string) error {
	set := flag.NewFlagSet("env", flag.ContinueOnError)
	c.RegisterFlags(set)
	for key, value := range vars {
		name, ok := strings.CutPrefix(key, envPrefix)
		if !ok {
			continue
		}
		name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
		if set.Lookup(name) == nil {
			return fmt.Errorf("unknown setting %s", key)
		}
		if err := set.Set(name, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
