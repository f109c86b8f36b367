package conv

import (
	"reflect"
	"testing"
)

func TestConfigGet(t *testing.T) {
	m := map[string]interface{}{
		"name":   "hot",
		"strict": true,
		"count":  3,
	}

	if got := ConfigGet(m, "name", "default"); got != "hot" {
		t.Errorf("ConfigGet(name) = %q, want hot", got)
	}
	if got := ConfigGet(m, "missing", "default"); got != "default" {
		t.Errorf("ConfigGet(missing) = %q, want default", got)
	}
	if got := ConfigGet(m, "strict", false); !got {
		t.Error("ConfigGet(strict) = false, want true")
	}
	// 类型不符：回落默认值
	if got := ConfigGet(m, "count", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet(count as string) = %q, want fallback", got)
	}
	if got := ConfigGet[string](nil, "any", "default"); got != "default" {
		t.Errorf("ConfigGet(nil map) = %q, want default", got)
	}
}

func TestConfigGetInt64(t *testing.T) {
	m := map[string]interface{}{
		"int":    10,
		"int64":  int64(20),
		"float":  30.7, // YAML 数字可能解析成 float64
		"string": "40",
	}

	tests := []struct {
		key  string
		want int64
	}{
		{"int", 10},
		{"int64", 20},
		{"float", 30},
		{"string", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := ConfigGetInt64(m, tt.key, -1); got != tt.want {
			t.Errorf("ConfigGetInt64(%s) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestConfigGetFloat64(t *testing.T) {
	m := map[string]interface{}{
		"float": 1.5,
		"int":   3,
		"int64": int64(7),
		"bool":  true,
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"float", 1.5},
		{"int", 3},
		{"int64", 7},
		{"bool", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := ConfigGetFloat64(m, tt.key, -1); got != tt.want {
			t.Errorf("ConfigGetFloat64(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	got := SliceAnyToString([]interface{}{"a", 1, "b", nil})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToString() = %v, want %v", got, want)
	}
	if got := SliceAnyToString("not a slice"); got != nil {
		t.Errorf("SliceAnyToString(string) = %v, want nil", got)
	}
}

func TestMapToFloat64(t *testing.T) {
	got := MapToFloat64(map[string]interface{}{
		"a": 1.5,
		"b": 2,
		"c": int64(3),
		"d": "skip",
	})
	want := map[string]float64{"a": 1.5, "b": 2, "c": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapToFloat64() = %v, want %v", got, want)
	}
}
