package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golangsnmp/snmpc/cmd/internal/cliutil"
	"github.com/golangsnmp/snmpc/mib"
	"github.com/golangsnmp/snmpc/snmp"
)

// defaultWalkTarget is walked when no OID argument is given.
const defaultWalkTarget = "mib-2"

// cmdWalk implements the walk and bulkwalk subcommands.
func (c *cli) cmdWalk(name string, args []string) int {
	if name == "bulkwalk" && c.version < snmp.V2c {
		return cliutil.Errorf("Cannot send V2 PDU on V1 session")
	}
	if len(args) < 1 || len(args) > 2 {
		usage(findApp(name))
		return exitError
	}
	target := defaultWalkTarget
	if len(args) == 2 {
		target = args[1]
	}

	start, ok := c.parseOid(target)
	if !ok {
		return exitError
	}
	var end mib.Oid
	if c.endOid != "" {
		if end, ok = c.parseOid(c.endOid); !ok {
			return exitError
		}
	}

	sess, err := c.open(args[0], "161")
	if err != nil {
		return cliutil.Errorf("%s: %v", name, err)
	}
	defer sess.Close()

	w := &snmp.Walker{
		Start:          start,
		End:            end,
		CheckIncrease:  c.checkIncrease,
		IncludeStart:   c.includeStart,
		FallbackGet:    c.fallbackGet,
		Bulk:           name == "bulkwalk",
		NonRepeaters:   c.nonRepeaters,
		MaxRepetitions: c.maxRepetitions,
	}

	began := time.Now()
	n, err := w.Run(sess, func(vb snmp.Varbind) error {
		c.print(vb)
		return nil
	})
	if err != nil {
		return cliutil.Errorf("%v", err)
	}
	elapsed := time.Since(began)

	if c.printSummary {
		fmt.Printf("Variables found: %d\n", n)
	}
	if c.printTime {
		fmt.Fprintf(os.Stderr, "Total traversal time: %d.%09d seconds\n",
			int64(elapsed/time.Second), int64(elapsed%time.Second))
	}
	return exitOK
}
