package debug

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
)

func init() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

//
// Debug output is controled by SIGMADEBUG environment variable, which
// can be a list of labels (e.g., "SIM_ALLOC;SIM_MEM").
//

var (
	once   sync.Once
	labels map[Tselector]bool
)

func debugLabels() map[Tselector]bool {
	once.Do(func() {
		labels = parseLabels(os.Getenv("SIGMADEBUG"))
	})
	return labels
}

func parseLabels(s string) map[Tselector]bool {
	m := make(map[Tselector]bool)
	if s == "" {
		return m
	}
	for _, l := range strings.Split(s, ";") {
		m[Tselector(l)] = true
	}
	return m
}

func WillBePrinted(label Tselector) bool {
	if label == ALWAYS {
		return true
	}
	_, ok := debugLabels()[label]
	return ok
}

func DPrintf(label Tselector, format string, v ...interface{}) {
	if WillBePrinted(label) {
		log.Printf("%v %v", label, fmt.Sprintf(format, v...))
	}
}

func DFatalf(format string, v ...interface{}) {
	// Get info for the caller.
	pc, file, line, ok := runtime.Caller(1)
	fnDetails := runtime.FuncForPC(pc)
	if ok && fnDetails != nil {
		log.Fatalf("FATAL %v %v:%v %v", fnDetails.Name(), file, line, fmt.Sprintf(format, v...))
	} else {
		log.Fatalf("FATAL (missing details) %v", fmt.Sprintf(format, v...))
	}
}
