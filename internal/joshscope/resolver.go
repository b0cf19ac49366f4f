package joshscope

import (
	"strings"

	"github.com/joshsim/joshc/internal/josherrors"
	"github.com/joshsim/joshc/internal/joshvalue"
)

// ValueResolver resolves a dotted attribute path against a Scope, recursing
// into nested entities one segment group at a time (spec §4.2). Given
// `p_1.p_2...p_n`, it tries the prefixes `p_1...p_k` for k = n, n-1, ..., 1
// in that order; the first prefix the scope has directly is the hit, and
// whatever remains (`p_{k+1}...p_n`, possibly empty) is resolved against the
// entity found there. This resolves longest-match-wins in favor of the
// fewest recursive hops, per the spec's open question on prefix-matching
// order.
//
// The split found for one path is memoized, so a second Get for the exact
// same path skips the prefix scan and recurses straight to the remembered
// split (spec §8 scenario 6).
type ValueResolver struct {
	scope Scope
	memo  map[string]split
}

type split struct {
	foundPath string
	inner     string
}

// NewValueResolver builds a resolver rooted at scope.
func NewValueResolver(scope Scope) *ValueResolver {
	return &ValueResolver{scope: scope, memo: make(map[string]split)}
}

// Get resolves path against the resolver's root scope.
func (r *ValueResolver) Get(path string) (*joshvalue.EngineValue, error) {
	if s, ok := r.memo[path]; ok {
		return r.resolveSplit(path, s)
	}

	segments := strings.Split(path, ".")
	for k := len(segments); k >= 1; k-- {
		foundPath := strings.Join(segments[:k], ".")
		if !r.scope.Has(foundPath) {
			continue
		}
		inner := strings.Join(segments[k:], ".")
		s := split{foundPath: foundPath, inner: inner}
		r.memo[path] = s
		return r.resolveSplit(path, s)
	}

	return nil, josherrors.Resolution(path, r.scope.Attributes())
}

// Has reports whether path can be resolved without committing its split to
// the memo table.
func (r *ValueResolver) Has(path string) bool {
	if s, ok := r.memo[path]; ok {
		_, err := r.resolveSplit(path, s)
		return err == nil
	}
	segments := strings.Split(path, ".")
	for k := len(segments); k >= 1; k-- {
		foundPath := strings.Join(segments[:k], ".")
		if r.scope.Has(foundPath) {
			_, err := r.resolveSplit(path, split{foundPath: foundPath, inner: strings.Join(segments[k:], ".")})
			return err == nil
		}
	}
	return false
}

func (r *ValueResolver) resolveSplit(path string, s split) (*joshvalue.EngineValue, error) {
	value, err := r.scope.Get(s.foundPath)
	if err != nil {
		return nil, err
	}
	if s.inner == "" {
		return value, nil
	}

	handle, err := value.AsEntity()
	if err != nil {
		return nil, josherrors.Resolution(path, r.scope.Attributes())
	}
	inner, ok := handle.(attributeSource)
	if !ok {
		return nil, josherrors.Resolution(path, r.scope.Attributes())
	}

	innerScope := NewEntityScope(inner, r.scope.Converter())
	innerResolver := NewValueResolver(innerScope)
	return innerResolver.Get(s.inner)
}
