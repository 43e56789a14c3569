package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/moltext/moltext/pkg/ast"
	"github.com/moltext/moltext/pkg/cache"
	moltexterrors "github.com/moltext/moltext/pkg/errors"
	moltextio "github.com/moltext/moltext/pkg/io"
	"github.com/moltext/moltext/pkg/observability"
	"github.com/moltext/moltext/pkg/smiles"
	"github.com/moltext/moltext/pkg/viz"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → encode → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		JobID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	name, mol, doc, err := r.decode(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if opts.Name != "" {
		name = opts.Name
	}
	result.Name = name
	result.Molecule = mol
	result.DocHash = cache.Hash(doc)
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.ComponentCount = len(mol.Components)

	r.Logger.Info("decoded document",
		"name", name,
		"components", len(mol.Components),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Encode
	encodeStart := time.Now()
	notation, encodeHit, err := r.EncodeWithCacheInfo(ctx, mol, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Notation = notation
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.CacheInfo.EncodeHit = encodeHit

	r.Logger.Info("encoded notation",
		"length", len(notation),
		"duration", result.Stats.EncodeTime)

	// Stage 3: Render
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, mol, result.DocHash, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered artifacts",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Decode reads the molecule document named by the options.
func (r *Runner) Decode(ctx context.Context, opts Options) (string, *ast.Molecule, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return "", nil, err
	}
	name, mol, _, err := r.decode(ctx, opts)
	return name, mol, err
}

// decode returns the document name, molecule, and raw document bytes.
func (r *Runner) decode(ctx context.Context, opts Options) (string, *ast.Molecule, []byte, error) {
	source := opts.Input
	if len(opts.Document) > 0 {
		source = "inline"
	}
	observability.Pipeline().OnDecodeStart(ctx, source)
	start := time.Now()

	doc := opts.Document
	if len(doc) == 0 {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			err = moltexterrors.Wrap(moltexterrors.ErrCodeFileNotFound, err, "read %s", opts.Input)
			observability.Pipeline().OnDecodeComplete(ctx, source, 0, time.Since(start), err)
			return "", nil, nil, err
		}
		doc = data
	}

	name, mol, err := moltextio.ReadDocument(bytes.NewReader(doc))
	if err != nil {
		observability.Pipeline().OnDecodeComplete(ctx, source, 0, time.Since(start), err)
		return "", nil, nil, err
	}
	observability.Pipeline().OnDecodeComplete(ctx, source, len(mol.Components), time.Since(start), nil)
	return name, mol, doc, nil
}

// EncodeWithCacheInfo encodes a molecule with caching and reports cache hit info.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, mol *ast.Molecule, docHash string, opts Options) (string, bool, error) {
	cacheKey := r.Keyer.EncodeKey(docHash, cache.EncodeKeyOpts{})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "smiles")
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "smiles")
	}

	observability.Pipeline().OnEncodeStart(ctx, opts.Name)
	start := time.Now()
	notation, err := smiles.Encode(mol)
	observability.Pipeline().OnEncodeComplete(ctx, opts.Name, len(notation), time.Since(start), err)
	if err != nil {
		return "", false, err
	}

	if err := r.Cache.Set(ctx, cacheKey, []byte(notation), cache.TTLEncode); err == nil {
		observability.Cache().OnCacheSet(ctx, "smiles", len(notation))
	}

	return notation, false, nil
}

// EncodeMolecule is a convenience wrapper that hashes the molecule's
// document form and calls EncodeWithCacheInfo.
func (r *Runner) EncodeMolecule(ctx context.Context, mol *ast.Molecule, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := moltextio.WriteDocument(opts.Name, mol, &buf); err != nil {
		return "", err
	}
	notation, _, err := r.EncodeWithCacheInfo(ctx, mol, cache.Hash(buf.Bytes()), opts)
	return notation, err
}

// RenderWithCacheInfo generates artifacts with caching and reports cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, mol *ast.Molecule, docHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := r.render(mol, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// render produces every requested format from one DOT conversion.
func (r *Runner) render(mol *ast.Molecule, opts Options) (map[string][]byte, error) {
	dot, err := viz.ToDOT(mol, viz.Options{Detailed: opts.Detailed})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			out[format] = []byte(dot)
		case FormatSVG:
			svg, err := viz.RenderSVG(dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			out[format] = svg
		case FormatPNG:
			png, err := viz.RenderPNG(dot, opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			out[format] = png
		case FormatPDF:
			pdf, err := viz.RenderPDF(dot)
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			out[format] = pdf
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
