package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/bootstrap"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the manifest looked up in the working directory
const DefaultFileName = "dotfiles.toml"

// Document is the decoded manifest. Every section is optional.
type Document struct {
	Symlink   map[string]string `toml:"symlink" yaml:"symlink"`
	Copy      map[string]string `toml:"copy" yaml:"copy"`
	Template  map[string]string `toml:"template" yaml:"template"`
	Bootstrap *bootstrap.Config `toml:"bootstrap" yaml:"bootstrap"`
}

// Section returns the mapping for kind
func (d *Document) Section(kind types.Kind) map[string]string {
	switch kind {
	case types.KindSymlink:
		return d.Symlink
	case types.KindCopy:
		return d.Copy
	case types.KindTemplate:
		return d.Template
	default:
		return nil
	}
}

// Len returns the number of mapping pairs across all sections
func (d *Document) Len() int {
	return len(d.Symlink) + len(d.Copy) + len(d.Template)
}

// Load reads and decodes the manifest at path. Files ending in .yaml or .yml
// are decoded as YAML, anything else as TOML. Unknown keys are rejected.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = DecodeYAML(data)
	default:
		doc, err = DecodeTOML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", path).
		Int("symlink", len(doc.Symlink)).
		Int("copy", len(doc.Copy)).
		Int("template", len(doc.Template)).
		Bool("bootstrap", doc.Bootstrap != nil).
		Msg("Manifest loaded")

	return doc, nil
}

// sections are the top-level keys a manifest may contain
var sections = map[string]bool{
	"symlink":   true,
	"copy":      true,
	"template":  true,
	"bootstrap": true,
}

// DecodeTOML decodes a TOML manifest. Section names are matched exactly.
func DecodeTOML(data []byte) (*Document, error) {
	// go-toml matches struct fields case-insensitively, so check the
	// top-level names first
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key := range raw {
		if !sections[key] {
			return nil, fmt.Errorf("unknown section %q", key)
		}
	}

	var doc Document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return validate(&doc)
}

// DecodeYAML decodes a YAML manifest. An empty document is valid.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}
	return validate(&doc)
}

func validate(doc *Document) (*Document, error) {
	if doc.Bootstrap != nil {
		if err := doc.Bootstrap.Validate(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Parse flattens doc into entries: symlink section first, then copy, then
// template, each sorted by target key. Targets are expanded with r. The first
// expansion failure aborts the parse with an ErrPathExpansion error and no
// entries.
func Parse(doc *Document, r *paths.Resolver) ([]types.Entry, error) {
	entries := make([]types.Entry, 0, doc.Len())

	for _, kind := range types.Kinds {
		section := doc.Section(kind)
		for _, target := range sortedKeys(section) {
			entry, err := parseEntry(r, target, section[target], kind)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func parseEntry(r *paths.Resolver, target, source string, kind types.Kind) (types.Entry, error) {
	resolved, err := r.Resolve(target)
	if err != nil {
		return types.Entry{}, errors.Wrapf(err, errors.ErrPathExpansion,
			"failed to expand the target path %s", target).
			WithDetail("target", target).
			WithDetail("kind", kind.String())
	}

	return types.Entry{
		Source: source,
		Target: resolved,
		Kind:   kind,
	}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
