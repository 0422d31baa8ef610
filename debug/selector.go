package debug

type Tselector string

// ALWAYS
const (
	ALWAYS Tselector = "ALWAYS"
	ERROR  Tselector = "ERROR"
	NEVER  Tselector = "NEVER"
)

// Tests
const (
	TEST Tselector = "TEST"
)

// Frame-allocation simulator
const (
	SIM_MEM    Tselector = "SIM_MEM"
	SIM_PROC   Tselector = "SIM_PROC"
	SIM_ALLOC  Tselector = "SIM_ALLOC"
	SIM_POLICY Tselector = "SIM_POLICY"
	SIM_SCHED  Tselector = "SIM_SCHED"
	SIM_WORLD  Tselector = "SIM_WORLD"
	SIM_STATS  Tselector = "SIM_STATS"
	SIM_TEST   Tselector = "SIM_TEST"
)
