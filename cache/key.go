package cache

import (
	"fmt"
	"reflect"
	"strings"
)

// NoneKeyPart 可选参数缺省时在 key 里的写法
const NoneKeyPart = "None"

// BuildKey 构造缓存 key: "{prefix}-{p1}:{p2}:...:"
//
// 同一组参数总是得到同一个 key，不同的参数组合不会得到同一个 key：
// 字符串里的 ':' 和 '\' 会被转义，nil 与 nil 指针写作 None，字面量 "None" 写作 `\None`。
// prefix 为空或没有参数是调用方的 bug，直接 panic
func BuildKey(prefix string, parts ...any) string {
	if prefix == "" {
		panic(ErrKeyMisuse.WithMsgf("cache key prefix is required"))
	}
	if len(parts) == 0 {
		panic(ErrKeyMisuse.WithMsgf("cache key %q requires at least one part", prefix))
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	for _, p := range parts {
		b.WriteString(keyPart(p))
		b.WriteByte(':')
	}
	return b.String()
}

func keyPart(p any) string {
	if p == nil {
		return NoneKeyPart
	}
	if v := reflect.ValueOf(p); v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return NoneKeyPart
		}
		return keyPart(v.Elem().Interface())
	}
	if s, ok := p.(string); ok {
		if s == NoneKeyPart {
			return `\` + NoneKeyPart
		}
		return escaper.Replace(s)
	}
	return escaper.Replace(fmt.Sprint(p))
}

var escaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`)

// KeyPrefix returns the prefix part, used as a metric label
func KeyPrefix(key string) string {
	if i := strings.IndexByte(key, '-'); i > 0 {
		return key[:i]
	}
	return key
}
