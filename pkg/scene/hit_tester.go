package scene

// HitTester 碰撞检测器
type HitTester struct{}

// IsHit 检查两个对象的 AABB（轴对齐边界框）是否重叠
// 边界接触也视为重叠，结果与参数顺序无关
func (HitTester) IsHit(me, other Object) bool {
	a := me.Base()
	b := other.Base()
	return a.X+a.W >= b.X && a.X <= b.X+b.W &&
		a.Y+a.H >= b.Y && a.Y <= b.Y+b.H
}

// CanHit 检查 me 是否可以对 other 发起碰撞
func (HitTester) CanHit(me, other Object) bool {
	if me == other {
		return false
	}
	a := me.Base()
	b := other.Base()
	return b.IsHittedVisible && a.IsHitVisible && a.group() == b.group()
}
