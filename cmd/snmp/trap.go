package main

import (
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/golangsnmp/snmpc/cmd/internal/cliutil"
	"github.com/golangsnmp/snmpc/snmp"
)

// cmdTrap implements the trap subcommand: agent, uptime, trap OID, then
// zero or more (oid, type, value) triples. An empty uptime argument means
// the host's own uptime. Only SNMPv2-Trap is supported; v1 trap encoding
// is not implemented.
func (c *cli) cmdTrap(name string, args []string) int {
	if len(args) < 3 || len(args)%3 != 0 {
		usage(findApp(name))
		return exitError
	}
	if c.version == snmp.V1 {
		return cliutil.Errorf("trap is not supported for snmp v1")
	}

	uptime, ok := trapUptime(args[1])
	if !ok {
		return cliutil.Errorf("Bad value notation (%s)", args[1])
	}
	trapOid, ok := c.parseOid(args[2])
	if !ok {
		return exitError
	}

	var varbinds []snmp.Varbind
	for i := 3; i < len(args); i += 3 {
		oid, ok := c.parseOid(args[i])
		if !ok {
			return exitError
		}
		if len(args[i+1]) != 1 {
			usage(findApp(name))
			return exitError
		}
		value, err := snmp.ParseTypedValue(c.mib, args[i+1][0], args[i+2])
		if err != nil {
			return cliutil.Errorf("%s: %v", args[i], err)
		}
		varbinds = append(varbinds, snmp.Varbind{Name: oid, Value: value})
	}

	sess, err := c.open(args[0], "162")
	if err != nil {
		return cliutil.Errorf("%s: %v", name, err)
	}
	defer sess.Close()

	if err := sess.SendTrap(uptime, trapOid, varbinds); err != nil {
		return cliutil.Errorf("%s: %v", name, err)
	}
	return exitOK
}

// trapUptime resolves the uptime argument: empty means the system's own
// uptime, otherwise a non-negative count of hundredths of a second.
func trapUptime(arg string) (uint32, bool) {
	if arg == "" {
		return systemUptimeHundredths(), true
	}
	v, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// systemUptimeHundredths reads the monotonic time since boot.
func systemUptimeHundredths() uint32 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return 0
	}
	return uint32(ts.Sec*100 + ts.Nsec/10_000_000)
}
