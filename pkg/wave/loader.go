package wave

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ParseError 波次脚本解析错误
type ParseError struct {
	// Line 从 1 开始的行号
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wave script line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader 波次脚本加载器
//
// 脚本格式：每行一个波次，`WaveName arg1, arg2, ...`。
// 空行与以 // 开头的行被忽略；未注册的波次名跳过并记录调试日志；
// 参数个数或类型不符、数字或颜色无法解析都会返回 *ParseError。
type Loader struct {
	log *zap.Logger
}

// NewLoader 创建加载器
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// LoadFile 读取并解析脚本文件
func (l *Loader) LoadFile(path string, owner Owner) ([]Wave, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave script %s: %w", path, err)
	}
	waves, err := l.Parse(string(data), owner)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wave script %s: %w", path, err)
	}
	return waves, nil
}

// Parse 解析脚本文本，每个波次都绑定到 owner
// 解析本身没有副作用，对同一文本重复解析得到结构相同的独立波次
func (l *Loader) Parse(text string, owner Owner) ([]Wave, error) {
	var waves []Wave

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		name, rest := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			name, rest = line[:i], strings.TrimSpace(line[i+1:])
		}

		factory, ok := Lookup(name)
		if !ok {
			l.log.Debug("[WaveLoader] skip unknown wave",
				zap.Int("line", lineNo),
				zap.String("name", name))
			continue
		}

		args, err := parseArgs(rest)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: err}
		}
		w, err := factory(owner, args)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: fmt.Errorf("%s: %w", name, err)}
		}
		waves = append(waves, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan wave script: %w", err)
	}

	return waves, nil
}

// parseArgs 解析参数列表，空内容表示无参数
func parseArgs(content string) (Args, error) {
	if content == "" {
		return nil, nil
	}
	tokens, err := splitArgs(content)
	if err != nil {
		return nil, err
	}
	args := make(Args, 0, len(tokens))
	for _, tok := range tokens {
		v, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}
