package memsim

type WorldOpts struct {
	StatsWindow     int  // # ticks of fault-rate stats to record; 0 disables recording
	CheckInvariants bool // verify the frame table after every change
}

type WorldOpt interface {
	Apply(*WorldOpts)
}

var DefaultWorldOpts WorldOpts = WorldOpts{
	StatsWindow:     0,
	CheckInvariants: false,
}

type withStatsWindow struct {
	window int
}

func (o withStatsWindow) Apply(opts *WorldOpts) {
	opts.StatsWindow = o.window
}

func WithStatsWindow(window int) WorldOpt {
	return &withStatsWindow{
		window: window,
	}
}

type withInvariantChecks struct{}

func (withInvariantChecks) Apply(opts *WorldOpts) {
	opts.CheckInvariants = true
}

func WithInvariantChecks() WorldOpt {
	return &withInvariantChecks{}
}
