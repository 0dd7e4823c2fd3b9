// Package wendproj reads and writes wend.yaml, the project manifest
// `wendc init` writes and `wendc build`/`wendc run` read, modeled directly
// on the teacher's own `tawaModule` + gopkg.in/yaml.v2 pattern in main.go.
package wendproj

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// ManifestFile is the name wend.yaml is always read from and written to in
// the current directory, matching the teacher's own fixed "Tawa Module
// Information" filename convention.
const ManifestFile = "wend.yaml"

// Manifest is the project manifest. It intentionally carries no import or
// dependency resolution fields: there is no module system to resolve
// against (see the language's own Non-goals).
type Manifest struct {
	Package string `yaml:"package"`
	Entry   string `yaml:"entry"`
}

// New builds the manifest `wendc init <name>` writes: package name and a
// conventional entry file.
func New(name string) Manifest {
	return Manifest{Package: name, Entry: "main.wend"}
}

// Write marshals m to ManifestFile in the current directory.
func Write(m Manifest) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(ManifestFile, out, 0o644)
}

// Read loads ManifestFile from the current directory.
func Read() (Manifest, error) {
	data, err := ioutil.ReadFile(ManifestFile)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
