package dockerconfig

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
)

// defaultProperties is the embedded default configuration resource.
// ${key} references are substituted from the process-wide settings map
// when the layer is loaded; unknown references are left as-is.
const defaultProperties = `# dockwright engine client defaults
DOCKER_HOST=unix:///var/run/docker.sock
DOCKER_TLS_VERIFY=0
DOCKER_CONFIG=${user.home}/.docker
DOCKER_CERT_PATH=${user.home}/.docker
api.version=
registry.username=${user.name}
registry.url=https://index.docker.io/v1/
`

// UserPropertiesFname is the per-user override file, looked up in the
// user's home directory.
const UserPropertiesFname = ".dockwright.properties"

// configMap is one flat key/value layer of the configuration.
type configMap map[string]string

// merge returns a new map with over's entries overwriting m's. Neither
// input is modified.
func (m configMap) merge(over configMap) configMap {
	out := make(configMap, len(m)+len(over))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// ResolveDefault resolves a ClientConfig from the real process
// environment and the default process-wide settings.
func ResolveDefault() (*ClientConfig, error) {
	return Resolve(envMap(os.Environ()), DefaultSettings())
}

// Resolve resolves a ClientConfig from the given environment and
// process-wide settings. It is a pure function of its inputs, which
// keeps resolution deterministic in tests.
//
// Layers are merged in order, later ones overriding earlier ones:
// embedded defaults, the per-user override file, the environment
// (fixed keys only), the settings (fixed keys only). A host set in the
// environment is applied last and therefore always wins; external
// tooling relies on DOCKER_HOST behaving that way.
func Resolve(env, settings map[string]string) (*ClientConfig, error) {
	steps := []struct {
		name string
		load func() (configMap, error)
	}{
		{"defaults", func() (configMap, error) { return defaultLayer(settings) }},
		{"user file", func() (configMap, error) { return userFileLayer(settings) }},
		{"environment", func() (configMap, error) { return filterKeys(env), nil }},
		{"settings", func() (configMap, error) { return filterKeys(settings), nil }},
		{"environment host", func() (configMap, error) { return hostLayer(env), nil }},
	}

	merged := configMap{}
	for _, s := range steps {
		layer, err := s.load()
		if err != nil {
			return nil, fmt.Errorf("config: cannot load %s layer; %s", s.name, err)
		}
		merged = merged.merge(layer)
	}

	return NewBuilder().WithProperties(merged).Build()
}

// defaultLayer parses the embedded defaults and substitutes ${key}
// placeholders from settings.
func defaultLayer(settings map[string]string) (configMap, error) {
	p, err := loadProperties([]byte(defaultProperties))
	if err != nil {
		return nil, err
	}
	layer := configMap{}
	for k, v := range p.Map() {
		layer[k] = substitute(v, settings)
	}
	return layer, nil
}

// userFileLayer loads ~/.dockwright.properties if present. A missing
// file or an unknown home directory yields an empty layer.
func userFileLayer(settings map[string]string) (configMap, error) {
	home := settings["user.home"]
	if home == "" {
		return configMap{}, nil
	}
	path := filepath.Join(home, UserPropertiesFname)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return configMap{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := loadProperties(data)
	if err != nil {
		return nil, err
	}
	return configMap(p.Map()), nil
}

// hostLayer carries only an environment-provided host.
func hostLayer(env map[string]string) configMap {
	if host, ok := env[KeyHost]; ok {
		return configMap{KeyHost: host}
	}
	return configMap{}
}

// filterKeys keeps only entries from the fixed key set.
func filterKeys(src map[string]string) configMap {
	layer := configMap{}
	for _, k := range configKeys {
		if v, ok := src[k]; ok {
			layer[k] = v
		}
	}
	return layer
}

// loadProperties parses properties data with the library's own ${...}
// expansion disabled; substitution is done against the settings map
// instead, see substitute.
func loadProperties(data []byte) (*properties.Properties, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	return l.LoadBytes(data)
}

// substitute replaces ${key} occurrences in s with values from
// replacements, repeatedly until no further substitution applies.
// References to absent keys stay literal. A resolvable chain needs at
// most one pass per key, so the passes are capped at that; cyclic
// references stop making progress and end up literal.
func substitute(s string, replacements map[string]string) string {
	for i := 0; i < len(replacements); i++ {
		changed := false
		for k, v := range replacements {
			ph := "${" + k + "}"
			if strings.Contains(s, ph) && !strings.Contains(v, ph) {
				s = strings.Replace(s, ph, v, -1)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return s
}

// DefaultSettings returns the process-wide settings consulted by
// ResolveDefault: the current user's home directory and name.
func DefaultSettings() map[string]string {
	s := map[string]string{}
	if home, err := os.UserHomeDir(); err == nil {
		s["user.home"] = home
	}
	if u, err := user.Current(); err == nil {
		s["user.name"] = u.Username
	}
	return s
}

// envMap converts os.Environ-style "key=value" pairs to a map.
func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			env[parts[0]] = parts[1]
		}
	}
	return env
}
