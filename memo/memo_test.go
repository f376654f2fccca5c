package memo

import (
	"reflect"
	"sync"
	"testing"
)

func sameMap(a, b map[string]any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestDeepValue_StableOnEqualInput(t *testing.T) {
	var m Deep[map[string]any]

	first := map[string]any{"a": 1}
	got1 := m.Value(first)
	got2 := m.Value(map[string]any{"a": 1})

	if !sameMap(got1, first) {
		t.Fatal("Expected first call to return its input")
	}
	if !sameMap(got2, first) {
		t.Error("Expected structurally equal input to return the held reference")
	}
}

func TestDeepValue_ReplacesOnChange(t *testing.T) {
	var m Deep[map[string]any]

	m.Value(map[string]any{"a": 1})
	next := map[string]any{"a": 2}
	got := m.Value(next)

	if !sameMap(got, next) {
		t.Error("Expected changed input to replace the held reference")
	}
	if got["a"] != 2 {
		t.Errorf("Expected a=2, got %v", got["a"])
	}
}

func TestDeepValue_Nested(t *testing.T) {
	type item struct {
		Name string
		Tags []string
		meta map[string]int
	}

	var m Deep[[]item]
	first := []item{{Name: "x", Tags: []string{"a"}, meta: map[string]int{"n": 1}}}
	m.Value(first)

	got := m.Value([]item{{Name: "x", Tags: []string{"a"}, meta: map[string]int{"n": 1}}})
	if &got[0] != &first[0] {
		t.Error("Expected nested equal slice to keep held reference")
	}

	changed := []item{{Name: "x", Tags: []string{"a"}, meta: map[string]int{"n": 2}}}
	got = m.Value(changed)
	if &got[0] != &changed[0] {
		t.Error("Expected unexported field change to replace held reference")
	}
}

func TestDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal primitives", 1, 1, true},
		{"different primitives", 1, 2, false},
		{"nil vs empty slice", []int(nil), []int{}, true},
		{"nil vs empty map", map[string]int(nil), map[string]int{}, true},
		{"nested maps", map[string]any{"a": []any{1, "b"}}, map[string]any{"a": []any{1, "b"}}, true},
		{"nested maps differ", map[string]any{"a": []any{1, "b"}}, map[string]any{"a": []any{1, "c"}}, false},
		{"different types", int64(1), int32(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeepEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("DeepEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeepCurrent(t *testing.T) {
	var m Deep[int]
	if _, ok := m.Current(); ok {
		t.Fatal("Expected no value on zero Deep")
	}
	m.Value(7)
	if v, ok := m.Current(); !ok || v != 7 {
		t.Errorf("Current() = %v, %v; want 7, true", v, ok)
	}
}

func TestDeepConcurrentUse(t *testing.T) {
	var m Deep[[]int]
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Value([]int{1, 2, 3})
		}()
	}
	wg.Wait()

	v, ok := m.Current()
	if !ok || !DeepEqual(v, []int{1, 2, 3}) {
		t.Errorf("Unexpected held value %v", v)
	}
}
