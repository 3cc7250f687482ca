package system

import (
	"os"
	"sort"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/momentum/internal/constants"
)

// processesFunc is a variable to allow mocking in tests
var processesFunc = ps.Processes

// otherInstances returns the PIDs of running momentum processes besides this one
func otherInstances() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p == nil || p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == constants.AppName {
			pids = append(pids, p.Pid())
		}
	}
	sort.Ints(pids)
	return pids, nil
}
