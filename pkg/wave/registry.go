package wave

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Factory 由脚本参数构造波次
type Factory func(owner Owner, args Args) (Wave, error)

// registry 脚本中的波次名到构造函数的映射
var registry = map[string]Factory{
	"SleepBulletWave":             newSleepFromArgs,
	"ActionEnemyBulletWave":       newActionFromArgs,
	"EnemyToggleRandomTargetWave": newToggleFromArgs,
	"EnemySetXTargetWave":         newSetXTargetFromArgs,
	"EnemySpeedSetWave":           newSpeedSetFromArgs,
	"AllDirectionEnemyBulletWave": newAllDirectionFromArgs,
}

// Register 注册自定义波次，需在加载脚本之前调用
func Register(name string, f Factory) {
	registry[name] = f
}

// Lookup 查找波次构造函数
func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names 返回已注册的波次名（排序后）
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Args 波次参数列表
type Args []Value

// Count 检查参数个数在 [min, max] 内
func (a Args) Count(min, max int) error {
	if len(a) < min || len(a) > max {
		if min == max {
			return fmt.Errorf("%w: want %d arguments, got %d", ErrArgument, min, len(a))
		}
		return fmt.Errorf("%w: want %d to %d arguments, got %d", ErrArgument, min, max, len(a))
	}
	return nil
}

// Number 取第 i 个数字参数
func (a Args) Number(i int) (float64, error) {
	if err := a.expect(i, KindNumber); err != nil {
		return 0, err
	}
	return a[i].Num, nil
}

// OptNumber 取可选的第 i 个数字参数
func (a Args) OptNumber(i int, def float64) (float64, error) {
	if i >= len(a) {
		return def, nil
	}
	return a.Number(i)
}

// Int 取第 i 个非负整数参数
func (a Args) Int(i int) (int, error) {
	f, err := a.Number(i)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: argument %d must be a non-negative integer, got %v", ErrArgument, i+1, f)
	}
	return int(f), nil
}

// Bool 取第 i 个布尔参数
func (a Args) Bool(i int) (bool, error) {
	if err := a.expect(i, KindBool); err != nil {
		return false, err
	}
	return a[i].Bool, nil
}

// OptBool 取可选的第 i 个布尔参数
func (a Args) OptBool(i int, def bool) (bool, error) {
	if i >= len(a) {
		return def, nil
	}
	return a.Bool(i)
}

func (a Args) expect(i int, kind ValueKind) error {
	if i >= len(a) {
		return fmt.Errorf("%w: missing argument %d", ErrArgument, i+1)
	}
	if a[i].Kind != kind {
		return fmt.Errorf("%w: argument %d must be %s, got %s", ErrArgument, i+1, kind, a[i].Kind)
	}
	return nil
}

// SleepBulletWave(ms)
func newSleepFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(1, 1); err != nil {
		return nil, err
	}
	ms, err := args.Number(0)
	if err != nil {
		return nil, err
	}
	return NewSleepWave(owner, ms), nil
}

// ActionEnemyBulletWave(ms[, async])
// 脚本无法携带动作，生成的波次只占用时长
func newActionFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(1, 2); err != nil {
		return nil, err
	}
	ms, err := args.Number(0)
	if err != nil {
		return nil, err
	}
	async, err := args.OptBool(1, true)
	if err != nil {
		return nil, err
	}
	noop := func(context.Context) error { return nil }
	return NewActionWave(owner, millis(ms), noop, async), nil
}

// EnemyToggleRandomTargetWave(on)
func newToggleFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(1, 1); err != nil {
		return nil, err
	}
	on, err := args.Bool(0)
	if err != nil {
		return nil, err
	}
	return NewToggleRandomTargetWave(owner, on), nil
}

// EnemySetXTargetWave(percent)
func newSetXTargetFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(1, 1); err != nil {
		return nil, err
	}
	x, err := args.Number(0)
	if err != nil {
		return nil, err
	}
	return NewSetXTargetWave(owner, x), nil
}

// EnemySpeedSetWave(speed)
func newSpeedSetFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(1, 1); err != nil {
		return nil, err
	}
	speed, err := args.Number(0)
	if err != nil {
		return nil, err
	}
	return NewSpeedSetWave(owner, speed), nil
}

// AllDirectionEnemyBulletWave(bulletCount, shootCount, intervalMs, force, sprite[, angleOffset[, damage[, size]]])
func newAllDirectionFromArgs(owner Owner, args Args) (Wave, error) {
	if err := args.Count(5, 8); err != nil {
		return nil, err
	}
	bulletCount, err := args.Int(0)
	if err != nil {
		return nil, err
	}
	shootCount, err := args.Int(1)
	if err != nil {
		return nil, err
	}
	interval, err := args.Number(2)
	if err != nil {
		return nil, err
	}
	force, err := args.Number(3)
	if err != nil {
		return nil, err
	}
	if err := args.expect(4, KindSprite); err != nil {
		return nil, err
	}

	w := NewAllDirectionWave(owner, bulletCount, shootCount, millis(interval), force, args[4].Sprite)
	if w.AngleOffset, err = args.OptNumber(5, DefaultAngleOffset); err != nil {
		return nil, err
	}
	if w.Damage, err = args.OptNumber(6, DefaultBulletDamage); err != nil {
		return nil, err
	}
	if w.Size, err = args.OptNumber(7, DefaultBulletSize); err != nil {
		return nil, err
	}
	return w, nil
}
