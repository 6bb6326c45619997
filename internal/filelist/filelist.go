package filelist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultDelimiter separates file names inside a single -i / -o argument.
const DefaultDelimiter = "|"

var (
	ErrNoFiles       = errors.New("no files given")
	ErrSameArgs      = errors.New("input and output args are same, needs to be unique")
	ErrCountMismatch = errors.New("input and output file counts differ")
)

// Split breaks a delimiter separated list into file names. Empty entries
// are dropped, names are otherwise kept byte for byte.
func Split(arg, delimiter string) []string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var names []string
	for _, name := range strings.Split(arg, delimiter) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Pairs parses the -i and -o arguments into two equal-length ordered lists.
func Pairs(inputArg, outputArg, delimiter string) ([]string, []string, error) {
	if inputArg == outputArg {
		return nil, nil, ErrSameArgs
	}

	inputs := Split(inputArg, delimiter)
	outputs := Split(outputArg, delimiter)

	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, nil, ErrNoFiles
	}
	if len(inputs) != len(outputs) {
		return nil, nil, fmt.Errorf("%w: input file count %d does not match output file count %d",
			ErrCountMismatch, len(inputs), len(outputs))
	}
	if err := checkDistinct(inputs, outputs); err != nil {
		return nil, nil, err
	}

	return inputs, outputs, nil
}

// checkDistinct rejects any pair whose output would overwrite its own input.
func checkDistinct(inputs, outputs []string) error {
	for i := range inputs {
		if samePath(inputs[i], outputs[i]) {
			return fmt.Errorf("%w: pair %d copies %s onto itself", ErrSameArgs, i, inputs[i])
		}
	}
	return nil
}

// samePath compares two names lexically and, when both exist, by file identity
// so symlinks and hard links to the input are caught too.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// Pair is one manifest entry.
type Pair struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Manifest lists file pairs in YAML:
//
//	pairs:
//	  - input: a.bin
//	    output: /backup/a.bin
type Manifest struct {
	Pairs []Pair `yaml:"pairs"`
}

// LoadManifest reads a YAML manifest and returns its pairs as two lists.
func LoadManifest(path string) ([]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	var manifest Manifest
	if err := yaml.NewDecoder(f).Decode(&manifest); err != nil {
		return nil, nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}

	if len(manifest.Pairs) == 0 {
		return nil, nil, ErrNoFiles
	}

	inputs := make([]string, 0, len(manifest.Pairs))
	outputs := make([]string, 0, len(manifest.Pairs))
	for i, pair := range manifest.Pairs {
		if pair.Input == "" || pair.Output == "" {
			return nil, nil, fmt.Errorf("%w: manifest entry %d needs both input and output", ErrCountMismatch, i)
		}
		inputs = append(inputs, pair.Input)
		outputs = append(outputs, pair.Output)
	}
	if err := checkDistinct(inputs, outputs); err != nil {
		return nil, nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return inputs, outputs, nil
}
