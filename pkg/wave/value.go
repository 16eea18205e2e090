package wave

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/decker502/danmaku/pkg/scene"
	"golang.org/x/image/colornames"
)

// 脚本解析错误
var (
	ErrUnbalanced      = errors.New("unbalanced quotes or parentheses")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidColor    = errors.New("invalid color")
	ErrUnknownFunction = errors.New("unknown function")
	ErrArgument        = errors.New("invalid argument")
)

// funcCallPattern 形如 name(content) 的函数调用
var funcCallPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)

// ValueKind 参数值类型
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindSprite
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSprite:
		return "sprite"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value 脚本参数值
type Value struct {
	Kind   ValueKind
	Num    float64
	Str    string
	Bool   bool
	Sprite *scene.RectSprite
}

// splitArgs 按顶层逗号切分参数
//
// 引号内容按字面处理（开闭引号必须是同一字符），括号可以嵌套。
// 引号未闭合或括号不平衡时返回 ErrUnbalanced。
func splitArgs(content string) ([]string, error) {
	var (
		out   []string
		b     strings.Builder
		depth int
		quote rune
	)
	for _, c := range content {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected ')'", ErrUnbalanced)
			}
		case c == ',' && depth == 0:
			out = append(out, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(c)
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated %c", ErrUnbalanced, quote)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: missing ')'", ErrUnbalanced)
	}
	return append(out, b.String()), nil
}

// parseValue 将一个参数标记转换为值
//
// 依次尝试：带引号的字符串、布尔值（不区分大小写）、函数调用、数字。
func parseValue(token string) (Value, error) {
	t := strings.TrimSpace(token)

	if len(t) >= 2 && (t[0] == '"' || t[0] == '\'') && t[len(t)-1] == t[0] {
		return Value{Kind: KindString, Str: t[1 : len(t)-1]}, nil
	}

	switch strings.ToLower(t) {
	case "true":
		return Value{Kind: KindBool, Bool: true}, nil
	case "false":
		return Value{Kind: KindBool, Bool: false}, nil
	}

	if m := funcCallPattern.FindStringSubmatch(t); m != nil {
		return callFunction(m[1], m[2])
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, t)
	}
	return Value{Kind: KindNumber, Num: f}, nil
}

// callFunction 执行脚本内置函数
func callFunction(name, content string) (Value, error) {
	switch strings.ToLower(name) {
	case "colorrect":
		arg := unquote(strings.TrimSpace(content))
		c, err := parseColor(arg)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindSprite, Sprite: scene.NewRectSprite(c)}, nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
}

// parseColor 解析颜色名或十六进制颜色
// 6 位为 RRGGBB，8 位为 AARRGGBB，前导 # 可选
func parseColor(s string) (color.RGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c := color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
	if len(hex) == 8 {
		c.A = uint8(v >> 24)
	}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
