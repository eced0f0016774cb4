// Package datasets declares the registry of importable sources: which
// format each one carries and where it comes from.
package datasets

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatNaPTAN       Format = "gb-naptan"
	FormatTransXChange Format = "gb-transxchange"
	FormatNeTExFares   Format = "gb-netex-fares"
)

type BundleFormat string

const (
	BundleFormatNone BundleFormat = "none"
	BundleFormatZIP  BundleFormat = "zip"
)

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}

type DataSet struct {
	Identifier string   `yaml:"identifier"`
	Format     Format   `yaml:"format"`
	Provider   Provider `yaml:"provider"`

	Source       string       `yaml:"source"`
	UnpackBundle BundleFormat `yaml:"unpackBundle"`
}

//go:embed datasets.yaml
var registryYAML []byte

var (
	registryOnce sync.Once
	registry     []DataSet
	registryErr  error
)

// Registered returns every dataset declared in the embedded registry.
func Registered() ([]DataSet, error) {
	registryOnce.Do(func() {
		var parsed struct {
			Datasets []DataSet `yaml:"datasets"`
		}
		if err := yaml.Unmarshal(registryYAML, &parsed); err != nil {
			registryErr = fmt.Errorf("parse dataset registry: %w", err)
			return
		}

		for i := range parsed.Datasets {
			if parsed.Datasets[i].UnpackBundle == "" {
				parsed.Datasets[i].UnpackBundle = BundleFormatNone
			}
		}
		registry = parsed.Datasets
	})

	return registry, registryErr
}

// Get looks a dataset up by identifier.
func Get(identifier string) (DataSet, error) {
	registered, err := Registered()
	if err != nil {
		return DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return DataSet{}, fmt.Errorf("dataset %s is not registered", identifier)
}
