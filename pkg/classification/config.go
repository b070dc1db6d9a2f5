package classification

// Regulations holds the fixed selection sizes and weightings used by the engine.
// They are compiled in; nothing reads them from configuration.
type Regulations struct {
	// Mark preparation
	L5Keep     int // Level 5 marks kept after discounting the worst 20 credits
	L6PoolKeep int // Level 6 pool entries kept before the project is added again

	// Rule A and GPA
	L5Weight float64
	L6Weight float64
}

// Defaults returns the regulations in force.
func Defaults() Regulations {
	return Regulations{
		L5Keep:     5,
		L6PoolKeep: 4,

		L5Weight: 0.4,
		L6Weight: 0.6,
	}
}
