package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure ExtractorRegistry implements the interface.
var _ driven.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry dispatches extraction by MIME type.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewExtractorRegistry creates a registry holding extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	r := &ExtractorRegistry{extractors: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each of its MIME types.
func (r *ExtractorRegistry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range extractor.SupportedMIMETypes() {
		r.extractors[t] = extractor
	}
}

// Extract runs the extractor registered for mimeType.
func (r *ExtractorRegistry) Extract(
	ctx context.Context, mimeType string, content []byte,
) (*driven.ExtractResult, error) {
	r.mu.RLock()
	e, ok := r.extractors[mimeType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, mimeType)
	}
	return e.Extract(ctx, content)
}

// SupportedMIMETypes returns all registered MIME types, sorted.
func (r *ExtractorRegistry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
