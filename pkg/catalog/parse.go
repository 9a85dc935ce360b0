// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/cueutil"
)

const (
	// FormatCUE is the CUE catalog format (".cue").
	FormatCUE Format = "cue"
	// FormatTOML is the TOML catalog format (".toml").
	FormatTOML Format = "toml"
	// FormatYAML is the YAML catalog format (".yaml", ".yml").
	FormatYAML Format = "yaml"
	// FormatHCL is the HCL catalog format (".hcl").
	FormatHCL Format = "hcl"
)

var (
	//go:embed catalog_schema.cue
	catalogSchema []byte

	//go:embed default_catalog.cue
	defaultCatalog []byte

	// ErrUnsupportedFormat is returned for catalog files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

type (
	// Format identifies a catalog file encoding.
	Format string

	// mapDoc is the shape shared by the CUE, TOML and YAML encodings.
	mapDoc struct {
		Modules map[string][]string `json:"modules" toml:"modules" yaml:"modules"`
	}
)

// FormatFromPath picks the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data, format, filepath.Base(path))
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatCUE, "default_catalog.cue")
}

// Parse decodes data in the given format. filename is only used in errors.
func Parse(data []byte, format Format, filename string) (*Catalog, error) {
	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatCUE:
		entries, err = parseCUE(data, filename)
	case FormatTOML:
		var doc mapDoc
		if err = toml.Unmarshal(data, &doc); err != nil {
			err = fmt.Errorf("%s: %w", filename, err)
		}
		entries = doc.entries()
	case FormatYAML:
		var doc mapDoc
		if err = yaml.Unmarshal(data, &doc); err != nil {
			err = fmt.Errorf("%s: %w", filename, err)
		}
		entries = doc.entries()
	case FormatHCL:
		entries, err = parseHCL(data, filename)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return New(entries...)
}

func parseCUE(data []byte, filename string) ([]Entry, error) {
	doc, _, err := cueutil.Decode[mapDoc](catalogSchema, data, "#Catalog", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return doc.entries(), nil
}

// entries flattens the module map. Map encodings carry no module order, so
// entries come out sorted by name; version order is preserved.
func (d mapDoc) entries() []Entry {
	names := make([]string, 0, len(d.Modules))
	for n := range d.Modules {
		names = append(names, n)
	}
	slices.Sort(names)

	out := make([]Entry, 0, len(names))
	for _, n := range names {
		vs := make([]Version, len(d.Modules[n]))
		for i, v := range d.Modules[n] {
			vs[i] = Version(v)
		}
		out = append(out, Entry{Name: ModuleName(n), Versions: vs})
	}
	return out
}

var (
	hclRootSchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: "module", LabelNames: []string{"name"}}},
	}
	hclModuleSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{{Name: "versions", Required: true}},
	}
)

// parseHCL reads blocks of the form
//
//	module "markermanager" {
//	  versions = ["1.0", "1.1"]
//	}
//
// in file order.
func parseHCL(data []byte, filename string) ([]Entry, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	content, diags := file.Body.Content(hclRootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	entries := make([]Entry, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		body, diags := block.Body.Content(hclModuleSchema)
		if diags.HasErrors() {
			return nil, diags
		}
		attr := body.Attributes["versions"]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		versions, err := ctyVersions(val)
		if err != nil {
			return nil, fmt.Errorf("%s: module %q: %w", attr.Range.String(), block.Labels[0], err)
		}
		entries = append(entries, Entry{Name: ModuleName(block.Labels[0]), Versions: versions})
	}
	return entries, nil
}

// ctyVersions requires a list or tuple of strings. Numbers are rejected
// rather than converted, since 1.10 and 1.1 would collapse to the same value.
func ctyVersions(val cty.Value) ([]Version, error) {
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("versions must be a list of strings, got %s", ty.FriendlyName())
	}
	if val.IsNull() || !val.IsKnown() {
		return nil, errors.New("versions must be known")
	}

	out := make([]Version, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || !v.Type().Equals(cty.String) {
			return nil, fmt.Errorf("versions must be strings, got %s", v.Type().FriendlyName())
		}
		out = append(out, Version(v.AsString()))
	}
	return out, nil
}
