package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	db "framesim/debug"
	"framesim/simulation/memsim"
	"framesim/simulation/memsim/policy"
	"framesim/simulation/memsim/sched"
)

var paramsPath = flag.String("params", "", "yaml params file")
var nframe = flag.Int("nframe", 0, "total # frames (overrides params)")
var policyName = flag.String("policy", "", "allocation policy: EQ, RAND, PROP, PFF or WS (overrides params)")
var ntick = flag.Uint64("ntick", 0, "# ticks to run (overrides params)")
var seed = flag.Uint64("seed", 0, "random seed (overrides params)")

func readParams() (*memsim.Params, error) {
	var p *memsim.Params
	var err error
	if *paramsPath != "" {
		p, err = memsim.ReadParamsFile(*paramsPath)
	} else {
		p, err = memsim.ReadParams(strings.NewReader(""))
	}
	if err != nil {
		return nil, err
	}
	if *nframe > 0 {
		p.NFRAME = *nframe
	}
	if *policyName != "" {
		p.POLICY = *policyName
	}
	if *ntick > 0 {
		p.NTICK = *ntick
	}
	if *seed > 0 {
		p.SEED = *seed
	}
	if p.SEED == 0 {
		p.SEED = uint64(time.Now().UnixNano())
	}
	return p, p.Validate()
}

func main() {
	flag.Parse()
	p, err := readParams()
	if err != nil {
		db.DFatalf("Error params: %v", err)
	}
	rnd := rand.New(rand.NewSource(p.SEED))
	pol, err := policy.Lookup(p.POLICY, rnd)
	if err != nil {
		db.DFatalf("Error policy: %v", err)
	}
	opts := []memsim.WorldOpt{memsim.WithStatsWindow(p.Stats.WINDOW)}
	if p.CHECK_INVARIANTS {
		opts = append(opts, memsim.WithInvariantChecks())
	}
	w := memsim.NewWorld(memsim.NewAllocator(p.NFRAME), pol, sched.NewRandomSchedParams(rnd, p, nil), opts...)
	db.DPrintf(db.ALWAYS, "Run %v", p)
	for p.NTICK == 0 || w.T() < p.NTICK {
		if p.REPORT_EVERY > 0 && w.T()%p.REPORT_EVERY == 0 {
			fmt.Printf("=== t=%d\n%v\n\n", w.T(), w.Snapshot())
		}
		w.Tick()
	}
	fmt.Printf("=== t=%d\n%v\n\n%v\n", w.T(), w.Snapshot(), w.Stats())
	if p.Stats.WINDOW > 0 {
		fmt.Printf("%v\n", w.Stats().GetRecordedStats())
	}
}
