package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TESSERA_"

// envSetting maps one environment variable onto a setting.
type envSetting struct {
	name string
	set  func(c *Config, value string) error
}

var envSettings = []envSetting{
	{"TESSERA_RENDER_MAX_FPS", func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Render.MaxFPS = n
		return nil
	}},
	{"TESSERA_RENDER_COLOR_PROFILE", func(c *Config, v string) error {
		c.Render.ColorProfile = v
		return nil
	}},
	{"TESSERA_RENDER_ALT_SCREEN", func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		c.Render.AltScreen = b
		return nil
	}},
	{"TESSERA_LOGGING_LEVEL", func(c *Config, v string) error {
		c.Logging.Level = v
		return nil
	}},
	{"TESSERA_LOGGING_FILE", func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	}},
	{"TESSERA_DEBUG_SHOW_STACK", func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		c.Debug.ShowStack = b
		return nil
	}},
}

// ApplyEnv overrides settings from environment variables found through
// lookup, usually os.LookupEnv. Variables that are set but empty still
// apply.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		v, ok := lookup(s.name)
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			return &ValidationError{Path: envPath(s.name), Value: v, Message: err.Error()}
		}
	}
	return nil
}

// envPath converts TESSERA_RENDER_MAX_FPS to render.max_fps.
func envPath(name string) string {
	section, key, _ := strings.Cut(strings.TrimPrefix(name, EnvPrefix), "_")
	return strings.ToLower(section) + "." + strings.ToLower(key)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}
