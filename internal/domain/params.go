package domain

import "fmt"

// Params - параметры варианта (эффекта, AI, behaviour) из каталога блюпринтов.
// Значения приходят из YAML, поэтому числа бывают int и float64.
type Params map[string]any

func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p Params) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// Map - вложенная таблица (например, веса спавна).
func (p Params) Map(key string) Params {
	switch v := p[key].(type) {
	case Params:
		return v
	case map[string]any:
		return Params(v)
	}
	return nil
}
