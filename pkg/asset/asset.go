// Package asset resolves issuer logo references to image bytes and
// normalizes them into PNGs the PDF writer can embed.
//
// A reference is either a path relative to an asset directory
// ("logos/acme.png") or an absolute http(s) URL. Resolvers compose:
//
//	r := asset.Chain(
//	    asset.NewFileResolver("assets"),
//	    asset.NewHTTPResolver("https://cdn.example.com/", nil),
//	)
//	r = asset.Cached(r, c, cache.NewDefaultKeyer())
//
// Every resolver reports an unknown reference as [ErrNotFound]. The engine
// treats any resolve or decode failure as a missing logo and draws a
// placeholder, so none of these errors abort a render.
package asset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/podoc/pkg/cache"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/httputil"
	"github.com/matzehuels/podoc/pkg/observability"
)

// ErrNotFound is returned when no resolver knows a reference.
var ErrNotFound = errors.New("asset not found")

// Resolver turns a reference into raw image bytes.
type Resolver interface {
	Resolve(ctx context.Context, ref string) ([]byte, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(ctx context.Context, ref string) ([]byte, error)

func (f ResolverFunc) Resolve(ctx context.Context, ref string) ([]byte, error) { return f(ctx, ref) }

// FileResolver reads references below Root.
type FileResolver struct {
	Root string
}

func NewFileResolver(root string) *FileResolver { return &FileResolver{Root: root} }

// Resolve implements [Resolver]. URLs are not handled here and report
// [ErrNotFound] so a [Chain] moves on.
func (r *FileResolver) Resolve(ctx context.Context, ref string) ([]byte, error) {
	if isURL(ref) {
		return nil, ErrNotFound
	}
	if err := perrors.ValidateAssetRef(ref); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(r.Root, filepath.FromSlash(ref)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return data, err
}

// HTTPResolver fetches absolute URLs, and relative references below Base
// when Base is set.
type HTTPResolver struct {
	Base   string
	client *httputil.Client
}

// NewHTTPResolver returns a resolver using client, or a default
// [httputil.Client] when nil.
func NewHTTPResolver(base string, client *httputil.Client) *HTTPResolver {
	if client == nil {
		client = httputil.NewClient()
	}
	return &HTTPResolver{Base: base, client: client}
}

// Resolve implements [Resolver].
func (r *HTTPResolver) Resolve(ctx context.Context, ref string) ([]byte, error) {
	url := ref
	if !isURL(ref) {
		if r.Base == "" {
			return nil, ErrNotFound
		}
		if err := perrors.ValidateAssetRef(ref); err != nil {
			return nil, err
		}
		url = strings.TrimSuffix(r.Base, "/") + "/" + ref
	}
	if err := perrors.ValidateURL(url); err != nil {
		return nil, err
	}

	data, err := r.client.Fetch(ctx, url)
	if errors.Is(err, httputil.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return data, err
}

// Chain tries each resolver in order and returns the first hit. When all
// fail it returns the last error that was not [ErrNotFound], or
// [ErrNotFound].
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, ref string) ([]byte, error) {
		var lastErr error
		for _, r := range resolvers {
			data, err := r.Resolve(ctx, ref)
			if err == nil {
				return data, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !errors.Is(err, ErrNotFound) {
				lastErr = err
			}
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	})
}

// Cached stores resolved bytes in c under keyer.AssetKey(ref) for
// [cache.TTLAsset]. Cache failures fall through to the inner resolver.
func Cached(inner Resolver, c cache.Cache, keyer cache.Keyer) Resolver {
	return ResolverFunc(func(ctx context.Context, ref string) ([]byte, error) {
		key := keyer.AssetKey(ref)
		hooks := observability.Cache()
		if data, hit, err := c.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, "asset")
			return data, nil
		}
		hooks.OnCacheMiss(ctx, "asset")

		data, err := inner.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if c.Set(ctx, key, data, cache.TTLAsset) == nil {
			hooks.OnCacheSet(ctx, "asset", len(data))
		}
		return data, nil
	})
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
