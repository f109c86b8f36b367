package conv

// 配置取值辅助：config 包的 builder 从 map[string]interface{} 读取 YAML/JSON
// 反序列化出来的值，类型经常在 int/int64/float64 之间摇摆，这里统一收敛。

// ConfigGet 从配置 map 中读取指定类型的值，缺失或类型不符时返回默认值。
func ConfigGet[T any](m map[string]interface{}, key string, def T) T {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok {
		return def
	}
	if tv, ok := v.(T); ok {
		return tv
	}
	return def
}

// ConfigGetInt64 读取整数配置；YAML 解析出的数字可能是 int/int64/float64。
func ConfigGetInt64(m map[string]interface{}, key string, def int64) int64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return def
	}
}

// ConfigGetFloat64 读取浮点配置；整数值自动提升。
func ConfigGetFloat64(m map[string]interface{}, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// SliceAnyToString 把 []interface{} 转换为 []string，忽略非字符串元素。
func SliceAnyToString(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MapToFloat64 把 map[string]interface{} 转换为 map[string]float64。
func MapToFloat64(m map[string]interface{}) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		}
	}
	return out
}
