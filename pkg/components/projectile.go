package components

// Projectile 武器发射的弹体（子弹、导弹），存放在武器自己的子池中
type Projectile struct {
	Position Vec3
	Velocity Vec3
	Radius   float64
	Damage   float64
	Lifetime LifetimeComponent
	// Target 导弹锁定的敌人，零值表示未锁定
	Target EnemyRef
	// Aim 锁定目标最近一次已知位置
	Aim Vec3
}
