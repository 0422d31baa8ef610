package memsim

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"

	db "framesim/debug"
)

type Stats struct {
	nadmit  uint64 // # admitted processes
	nfail   uint64 // # failed admissions
	nretire uint64 // # retired processes
	nforced uint64 // # frames reclaimed by forced deallocation
	nmoved  uint64 // # frames taken away by rebalancing
	nref    uint64
	nfault  uint64
	rstats  *RecordedStats
}

func NewStats() *Stats {
	return &Stats{
		rstats: NewRecordedStats(0),
	}
}

func (st *Stats) NAdmit() uint64 { return st.nadmit }
func (st *Stats) NFail() uint64 { return st.nfail }
func (st *Stats) NRetire() uint64 { return st.nretire }
func (st *Stats) NForced() uint64 { return st.nforced }
func (st *Stats) NMoved() uint64 { return st.nmoved }
func (st *Stats) NRef() uint64 { return st.nref }
func (st *Stats) NFault() uint64 { return st.nfault }

func (st *Stats) FaultRatio() float64 {
	if st.nref == 0 {
		return 0.0
	}
	return float64(st.nfault) / float64(st.nref)
}

func (st *Stats) String() string {
	return fmt.Sprintf("admit %v fail %v retire %v forced %v moved %v refs %v faults %v (%.2f%%)",
		humanize.Comma(int64(st.nadmit)), humanize.Comma(int64(st.nfail)), humanize.Comma(int64(st.nretire)),
		humanize.Comma(int64(st.nforced)), humanize.Comma(int64(st.nmoved)),
		humanize.Comma(int64(st.nref)), humanize.Comma(int64(st.nfault)), st.FaultRatio()*100)
}

func (st *Stats) RecordStats(window int) {
	st.rstats.window = window
}

func (st *Stats) StopRecordingStats() {
	st.rstats.window = 0
}

func (st *Stats) GetRecordedStats() *RecordedStats {
	return st.rstats
}

// Account for the references made in tick t by procs
func (st *Stats) tick(t uint64, procs []*Proc, nref, nfault uint64) {
	st.nref += nref
	st.nfault += nfault
	st.rstats.record(t, procs)
}

type RecordedStats struct {
	window       int
	rates        [][]float64 // per tick, fault rate of each live proc
	Time         []uint64
	AvgFaultRate []float64
	P90FaultRate []float64
}

func NewRecordedStats(window int) *RecordedStats {
	return &RecordedStats{
		window:       window,
		rates:        [][]float64{},
		Time:         []uint64{},
		AvgFaultRate: []float64{},
		P90FaultRate: []float64{},
	}
}

func roundToHundredth(f float64) float64 {
	return math.Round(f*100.0) / 100.0
}

func flatten(rates [][]float64) []float64 {
	flat := []float64{}
	for _, r := range rates {
		flat = append(flat, r...)
	}
	return flat
}

func avgRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0.0
	}
	m, err := stats.Mean(rates)
	if err != nil {
		db.DFatalf("Error calculating mean: %v", err)
	}
	return m
}

func percentileRate(p float64, rates []float64) float64 {
	if len(rates) == 0 {
		return 0.0
	}
	r, err := stats.Percentile(rates, p)
	if err != nil {
		db.DFatalf("Error calculating percentile %v: %v", p, err)
	}
	return r
}

// Optionally record fault rates over a sliding window of ticks
func (rst *RecordedStats) record(t uint64, procs []*Proc) {
	if rst.window <= 0 {
		return
	}
	rs := make([]float64, len(procs))
	for i, p := range procs {
		rs[i] = p.FaultRate()
	}
	rst.rates = append(rst.rates, rs)
	if len(rst.rates) > rst.window {
		rst.rates = rst.rates[len(rst.rates)-rst.window:]
	}
	flat := flatten(rst.rates)
	rst.Time = append(rst.Time, t)
	rst.AvgFaultRate = append(rst.AvgFaultRate, roundToHundredth(avgRate(flat)))
	rst.P90FaultRate = append(rst.P90FaultRate, roundToHundredth(percentileRate(90.0, flat)))
	db.DPrintf(db.SIM_STATS, "[t=%v] avg %v p90 %v", t, rst.AvgFaultRate[len(rst.AvgFaultRate)-1], rst.P90FaultRate[len(rst.P90FaultRate)-1])
}

func (rst *RecordedStats) String() string {
	return fmt.Sprintf("&{ window:%v\n\tavg:%v\n\tp90:%v\n}", rst.window, rst.AvgFaultRate, rst.P90FaultRate)
}
