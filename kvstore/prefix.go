package kvstore

import "context"

type prefixed struct {
	prefix string
	next   Store
}

// WithPrefix returns a Store that prepends prefix to every key.
func WithPrefix(s Store, prefix string) Store {
	if p, ok := s.(*prefixed); ok {
		return &prefixed{prefix: p.prefix + prefix, next: p.next}
	}
	return &prefixed{prefix: prefix, next: s}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) SetMany(ctx context.Context, values map[string]string) error {
	full := make(map[string]string, len(values))
	for k, v := range values {
		full[p.prefix+k] = v
	}
	return p.next.SetMany(ctx, full)
}

func (p *prefixed) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.prefix + k
	}
	return p.next.Delete(ctx, full...)
}
