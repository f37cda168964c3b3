package i18n

import "testing"

func TestDictionary_Lookup(t *testing.T) {
	d := Dictionary{
		"greet": map[string]any{
			"hello": "Hi {{name}}",
			"deep":  map[string]any{"er": "nested"},
		},
		"title": "PageKit",
		"count": 3.0,
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"title", "PageKit", true},
		{"greet.hello", "Hi {{name}}", true},
		{"greet.deep.er", "nested", true},
		{"greet", "", false},
		{"greet.missing", "", false},
		{"title.sub", "", false},
		{"count", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := d.Lookup(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		params map[string]any
		want   string
	}{
		{"single", "Hi {{name}}", map[string]any{"name": "Ana"}, "Hi Ana"},
		{"repeated", "{{x}} and {{x}}", map[string]any{"x": "y"}, "y and y"},
		{"unknown kept", "{{x}} {{y}}", map[string]any{"x": 1}, "1 {{y}}"},
		{"spaces", "Hello {{ name }}", map[string]any{"name": "Bo"}, "Hello Bo"},
		{"no params", "Hi {{name}}", nil, "Hi {{name}}"},
		{"no placeholders", "plain", map[string]any{"x": 1}, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.in, tt.params); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
