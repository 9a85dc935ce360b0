// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/cueutil"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
)

//go:embed module_schema.cue
var moduleSchema []byte

type (
	// CUEEvaluator evaluates ".cue" artifacts against the #Module schema.
	CUEEvaluator struct {
		MaxBytes int64
	}

	moduleDoc struct {
		Module  string         `json:"module"`
		Exports map[string]any `json:"exports,omitempty"`
	}
)

// Evaluate decodes data as a module declaration.
func (e CUEEvaluator) Evaluate(_ context.Context, req loader.FetchRequest, data []byte) (Module, error) {
	doc, _, err := cueutil.Decode[moduleDoc](moduleSchema, data, "#Module",
		cueutil.WithFilename(req.URL),
		cueutil.WithMaxFileSize(limitOrDefault(e.MaxBytes)))
	if err != nil {
		return Module{}, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	name := catalog.ModuleName(doc.Module)
	if err := name.Validate(); err != nil {
		return Module{}, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return Module{Name: name, Exports: doc.Exports}, nil
}
