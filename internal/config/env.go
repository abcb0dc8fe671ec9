package config

import (
	"strings"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "CODEMORPH_"

// envMapping holds short names for frequently overridden settings.
var envMapping = map[string]string{
	"CODEMORPH_LOG_LEVEL": "logging.level",
	"CODEMORPH_THEME":     "highlight.theme",
	"CODEMORPH_DIALECT":   "highlight.dialect",
	"CODEMORPH_DURATION":  "transition.duration",
}

// ApplyEnv overrides settings from environment entries of the form
// NAME=value. CODEMORPH_RENDER_DIM_ALPHA maps to render.dim_alpha. Prefixed
// variables that name no setting are ignored; values that fail to parse
// are errors.
func (c *Config) ApplyEnv(environ []string) error {
	for _, env := range environ {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		path, ok := envMapping[name]
		if !ok {
			path = envToPath(name)
		}
		if _, known := settings[path]; !known {
			continue
		}
		if err := c.Set(path, value); err != nil {
			return err
		}
	}
	return nil
}

// envToPath converts CODEMORPH_SECTION_SOME_KEY to section.some_key.
func envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}
