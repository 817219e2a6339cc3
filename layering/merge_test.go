package layering

import (
	"reflect"
	"testing"
)

type layeringSettings struct {
	Enabled   *bool
	Limits    map[string]int
	Channel   *layeringChannel
	Tags      []string
	Threshold *int
}

type layeringChannel struct {
	Enabled *bool
	Volume  *int
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestMergeLayersStrongestFirst(t *testing.T) {
	cases := []struct {
		name   string
		layers []layeringSettings
		expect layeringSettings
	}{
		{
			name: "stronger pointer wins",
			layers: []layeringSettings{
				{Enabled: boolPtr(false)},
				{Enabled: boolPtr(true), Threshold: intPtr(3)},
			},
			expect: layeringSettings{Enabled: boolPtr(false), Threshold: intPtr(3)},
		},
		{
			name: "maps merge key by key",
			layers: []layeringSettings{
				{Limits: map[string]int{"daily": 10}},
				{Limits: map[string]int{"daily": 100, "weekly": 700}},
			},
			expect: layeringSettings{Limits: map[string]int{"daily": 10, "weekly": 700}},
		},
		{
			name: "nested structs fall through per field",
			layers: []layeringSettings{
				{Channel: &layeringChannel{Volume: intPtr(2)}},
				{Channel: &layeringChannel{Enabled: boolPtr(true), Volume: intPtr(9)}},
			},
			expect: layeringSettings{Channel: &layeringChannel{Enabled: boolPtr(true), Volume: intPtr(2)}},
		},
		{
			name: "slices replace rather than append",
			layers: []layeringSettings{
				{Tags: []string{"a"}},
				{Tags: []string{"b", "c"}},
			},
			expect: layeringSettings{Tags: []string{"a"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeLayers(tc.layers...)
			if !reflect.DeepEqual(tc.expect, got) {
				t.Errorf("merged snapshot mismatch:\nwant: %#v\n got: %#v", tc.expect, got)
			}
		})
	}
}

func TestMergeLayersZeroInput(t *testing.T) {
	type sample struct {
		Value int
	}
	var zero sample
	if got := MergeLayers[sample](); got != zero {
		t.Fatalf("expected MergeLayers() to return zero value, got %+v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := layeringSettings{
		Limits:  map[string]int{"daily": 1},
		Channel: &layeringChannel{Volume: intPtr(4)},
	}
	clone := Clone(original)
	clone.Limits["daily"] = 2
	*clone.Channel.Volume = 5

	if original.Limits["daily"] != 1 || *original.Channel.Volume != 4 {
		t.Fatalf("clone shares state with original: %+v", original)
	}

	var empty any
	if got := Clone(empty); got != nil {
		t.Fatalf("expected nil clone of nil interface, got %v", got)
	}
}

func TestMergeRecordsFieldSources(t *testing.T) {
	overlay := Merge(
		layeringSettings{Enabled: boolPtr(false), Limits: map[string]int{"daily": 10}},
		layeringSettings{
			Enabled:   boolPtr(true),
			Limits:    map[string]int{"daily": 100, "weekly": 700},
			Channel:   &layeringChannel{Volume: intPtr(9)},
			Tags:      []string{"b"},
			Threshold: intPtr(3),
		},
	)

	want := map[string]int{
		"Enabled":        0,
		"Limits.daily":   0,
		"Limits.weekly":  1,
		"Channel.Volume": 1,
		"Tags.0":         1,
		"Threshold":      1,
	}
	if !reflect.DeepEqual(want, overlay.Sources) {
		t.Fatalf("sources mismatch:\nwant: %v\n got: %v", want, overlay.Sources)
	}
	if *overlay.Value.Enabled || overlay.Value.Limits["weekly"] != 700 {
		t.Fatalf("unexpected merged value: %+v", overlay.Value)
	}
}

func TestMergeInterfaceKeepsMatchingTypes(t *testing.T) {
	overlay := Merge[any](
		map[string]any{"mode": "fast"},
		"ignored",
		map[string]any{"mode": "slow", "retries": 2},
	)

	want := map[string]any{"mode": "fast", "retries": 2}
	if !reflect.DeepEqual(want, overlay.Value) {
		t.Fatalf("merged value mismatch:\nwant: %v\n got: %v", want, overlay.Value)
	}
	if overlay.Sources["retries"] != 2 {
		t.Fatalf("expected retries from layer 2, got %v", overlay.Sources)
	}
}
