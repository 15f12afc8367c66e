package i18n

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"
)

const bundleFormat = "properties"

// propertiesCodec lets viper read Java-style .properties bundles. Dotted keys become
// nested maps, so "no.reviews" is read back by the same dotted key.
type propertiesCodec struct{}

func (propertiesCodec) Decode(b []byte, v map[string]any) error {
	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return err
	}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		if err := setPath(v, strings.Split(key, "."), value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

func (propertiesCodec) Encode(v map[string]any) ([]byte, error) {
	flat := make(map[string]string)
	flatten("", v, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := properties.NewProperties()
	for _, k := range keys {
		if _, _, err := p.Set(k, flat[k]); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setPath(m map[string]any, path []string, value string) error {
	for _, part := range path[:len(path)-1] {
		next, ok := m[part]
		if !ok {
			child := make(map[string]any)
			m[part] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q is both a value and a group", part)
		}
		m = child
	}
	last := path[len(path)-1]
	if _, ok := m[last].(map[string]any); ok {
		return fmt.Errorf("%q is both a value and a group", last)
	}
	m[last] = value
	return nil
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

func newCodecRegistry() (*viper.DefaultCodecRegistry, error) {
	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec(bundleFormat, propertiesCodec{}); err != nil {
		return nil, fmt.Errorf("failed to register %s codec: %w", bundleFormat, err)
	}
	return codecs, nil
}
