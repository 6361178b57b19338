package workspace

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// manifestRemote is the upstream project hosting the SDK and its modules.
const manifestRemote = "zephyrproject-rtos"

// Manifest describes the west manifest generated into the application
// directory. Modules are held sorted so the marshaled bytes are stable
// across invocations regardless of caller ordering.
type Manifest struct {
	Revision string
	Modules  []string
}

// NewManifest creates a Manifest for the given SDK revision and module
// set. The module list is copied and sorted.
func NewManifest(revision string, modules []string) *Manifest {
	sorted := append([]string(nil), modules...)
	sort.Strings(sorted)
	return &Manifest{Revision: revision, Modules: sorted}
}

// manifestYAML is the west.yml document structure.
type manifestYAML struct {
	Manifest struct {
		Remotes []struct {
			Name    string `yaml:"name"`
			URLBase string `yaml:"url-base"`
		} `yaml:"remotes"`
		Projects []manifestProject `yaml:"projects"`
		Self     struct {
			Path string `yaml:"path"`
		} `yaml:"self"`
	} `yaml:"manifest"`
}

type manifestProject struct {
	Name       string   `yaml:"name"`
	Remote     string   `yaml:"remote,omitempty"`
	Revision   string   `yaml:"revision,omitempty"`
	Path       string   `yaml:"path,omitempty"`
	Import     string   `yaml:"import,omitempty"`
	NameAllow  []string `yaml:"name-allowlist,omitempty"`
}

// Render marshals the manifest to west.yml content.
func (m *Manifest) Render() ([]byte, error) {
	var doc manifestYAML
	doc.Manifest.Remotes = []struct {
		Name    string `yaml:"name"`
		URLBase string `yaml:"url-base"`
	}{
		{Name: manifestRemote, URLBase: "https://github.com/" + manifestRemote},
	}

	zephyr := manifestProject{
		Name:      "zephyr",
		Remote:    manifestRemote,
		Revision:  m.Revision,
		Import:    "west.yml",
		NameAllow: m.Modules,
	}
	doc.Manifest.Projects = []manifestProject{zephyr}
	doc.Manifest.Self.Path = "app"

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal west manifest: %w", err)
	}
	return data, nil
}
