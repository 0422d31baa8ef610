package memsim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var DefaultParams = `
nframe: 64
policy: EQ
seed: 0
ntick: 0
report_every: 100
check_invariants: false

sched:
  min_procs: 5
  max_procs: 10
  change_chance: 2
  min_size: 10
  max_size: 99

stats:
  window: 0
`

type Params struct {
	// Total # frames in the pool.
	NFRAME int `yaml:"nframe"`
	// Allocation policy: EQ, RAND, PROP, PFF or WS.
	POLICY string `yaml:"policy"`
	// Random seed; 0 picks one from the clock.
	SEED uint64 `yaml:"seed"`
	// # ticks to run; 0 runs forever.
	NTICK uint64 `yaml:"ntick"`
	// # ticks between memory dumps; 0 never dumps.
	REPORT_EVERY uint64 `yaml:"report_every"`
	// Verify the frame table after every tick.
	CHECK_INVARIANTS bool `yaml:"check_invariants"`
	Sched            struct {
		// Bounds on the # of live processes the scheduler aims for.
		MIN_PROCS int `yaml:"min_procs"`
		MAX_PROCS int `yaml:"max_procs"`
		// Chance, in percent, of admitting (and of retiring) a process per tick.
		CHANGE_CHANCE int `yaml:"change_chance"`
		// Bounds on the synthetic size of a new process.
		MIN_SIZE int `yaml:"min_size"`
		MAX_SIZE int `yaml:"max_size"`
	} `yaml:"sched"`
	Stats struct {
		// # ticks of fault-rate stats to record; 0 disables recording.
		WINDOW int `yaml:"window"`
	} `yaml:"stats"`
}

func (p *Params) String() string {
	return fmt.Sprintf("{nframe %d policy %v seed %d ntick %d procs [%d,%d] chance %d%% size [%d,%d]}",
		p.NFRAME, p.POLICY, p.SEED, p.NTICK, p.Sched.MIN_PROCS, p.Sched.MAX_PROCS,
		p.Sched.CHANGE_CHANCE, p.Sched.MIN_SIZE, p.Sched.MAX_SIZE)
}

func decodeParams(p *Params, rd io.Reader) error {
	d := yaml.NewDecoder(rd)
	if err := d.Decode(p); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ReadParams decodes params on top of DefaultParams.
func ReadParams(rd io.Reader) (*Params, error) {
	p := &Params{}
	if err := decodeParams(p, strings.NewReader(DefaultParams)); err != nil {
		return nil, fmt.Errorf("default params: %v", err)
	}
	if err := decodeParams(p, rd); err != nil {
		return nil, fmt.Errorf("params: %v", err)
	}
	return p, nil
}

func ReadParamsFile(pn string) (*Params, error) {
	file, err := os.Open(pn)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadParams(file)
}

func (p *Params) Validate() error {
	if p.NFRAME < 1 {
		return fmt.Errorf("nframe %d < 1", p.NFRAME)
	}
	if p.Sched.MIN_PROCS < 0 || p.Sched.MIN_PROCS > p.Sched.MAX_PROCS {
		return fmt.Errorf("bad proc bounds [%d,%d]", p.Sched.MIN_PROCS, p.Sched.MAX_PROCS)
	}
	if p.Sched.CHANGE_CHANCE < 0 || p.Sched.CHANGE_CHANCE > 100 {
		return fmt.Errorf("change chance %d%% not in [0,100]", p.Sched.CHANGE_CHANCE)
	}
	if p.Sched.MIN_SIZE < 0 || p.Sched.MIN_SIZE > p.Sched.MAX_SIZE {
		return fmt.Errorf("bad size bounds [%d,%d]", p.Sched.MIN_SIZE, p.Sched.MAX_SIZE)
	}
	if p.Stats.WINDOW < 0 {
		return fmt.Errorf("stats window %d < 0", p.Stats.WINDOW)
	}
	return nil
}
