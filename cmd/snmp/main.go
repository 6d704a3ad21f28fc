// Command snmp is an SNMPv1/v2c client: GET, GETNEXT, GETBULK, WALK,
// BULKWALK, and TRAP operations against SNMP agents, plus a dump of the
// compiled-in MIB tree.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/golangsnmp/snmpc"
	"github.com/golangsnmp/snmpc/cmd/internal/cliutil"
	"github.com/golangsnmp/snmpc/mib"
	"github.com/golangsnmp/snmpc/smi"
	"github.com/golangsnmp/snmpc/snmp"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1 // argument, transport, protocol, or server-reported error
)

const commonUsage = " [-c community] [-r retries] [-t timeout] [-v version]\n            [-O afnqvxSQ]"

// app describes one subcommand.
type app struct {
	name   string
	common bool // accepts the common -c/-r/-t/-v/-O options
	hasC   bool // accepts -C sub-options
	usage  string
	exec   func(c *cli, name string, args []string) int
}

var apps []app

func init() {
	apps = []app{
		{"get", true, false, "agent oid ...", (*cli).cmdGet},
		{"getnext", true, false, "agent oid ...", (*cli).cmdGet},
		{"walk", true, true, "[-C cIipt] [-C E endoid] agent [oid]", (*cli).cmdWalk},
		{"bulkget", true, true, "[-C n<nonrep>r<maxrep>] agent oid ...", (*cli).cmdGet},
		{"bulkwalk", true, true, "[-C cipn<nonrep>r<maxrep>] agent [oid]", (*cli).cmdWalk},
		{"trap", true, false, "agent uptime oid [oid type value] ...", (*cli).cmdTrap},
		{"mibtree", false, false, "[-O fnS]", (*cli).cmdMibtree},
	}
}

// cli carries the option state shared by the subcommands.
type cli struct {
	community string
	retries   int
	timeout   time.Duration
	version   snmp.Version
	out       smi.Options

	checkIncrease bool
	includeStart  bool
	fallbackGet   bool
	printSummary  bool
	printTime     bool
	endOid        string

	nonRepeaters   int32
	maxRepetitions int32

	mib *mib.Mib
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage(nil)
		return exitError
	}
	var a *app
	for i := range apps {
		if apps[i].name == args[0] {
			a = &apps[i]
			break
		}
	}
	if a == nil {
		usage(nil)
		return exitError
	}

	defaults, err := snmpc.LoadDefaults()
	if err != nil {
		return cliutil.Errorf("%v", err)
	}
	c := &cli{
		community:      defaults.Community,
		retries:        defaults.Retries,
		timeout:        time.Duration(defaults.Timeout) * time.Second,
		version:        defaults.SessionVersion(),
		checkIncrease:  true,
		fallbackGet:    true,
		maxRepetitions: 10,
		mib:            mib.Baseline(),
	}

	rest, ok := c.parseOptions(a, args[1:])
	if !ok {
		usage(a)
		return exitError
	}
	return a.exec(c, a.name, rest)
}

// parseOptions consumes leading -x options and returns the positional
// arguments. Option parsing stops at the first non-option argument.
func (c *cli) parseOptions(a *app, args []string) (rest []string, ok bool) {
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			break
		}
		letter := arg[1]
		value := arg[2:]
		if value == "" {
			if i+1 >= len(args) {
				return nil, false
			}
			i++
			value = args[i]
		}

		switch letter {
		case 'c', 'r', 't', 'v', 'O':
			if !a.common && letter != 'O' {
				return nil, false
			}
		case 'C':
			if !a.hasC {
				return nil, false
			}
		default:
			return nil, false
		}

		switch letter {
		case 'c':
			c.community = value
		case 'r':
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				cliutil.PrintError("-r: invalid argument")
				return nil, false
			}
			c.retries = n
		case 't':
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				cliutil.PrintError("-t: invalid argument")
				return nil, false
			}
			c.timeout = time.Duration(n) * time.Second
		case 'v':
			switch value {
			case "1":
				c.version = snmp.V1
			case "2c":
				c.version = snmp.V2c
			default:
				cliutil.PrintError("-v: unknown version %q", value)
				return nil, false
			}
		case 'O':
			if !c.parseOutputFlags(a, value) {
				return nil, false
			}
		case 'C':
			consumed, good := c.parseCFlags(a, value, args[i+1:])
			if !good {
				return nil, false
			}
			i += consumed
		}
	}
	return args[i:], true
}

// parseOutputFlags handles the -O option characters.
func (c *cli) parseOutputFlags(a *app, flags string) bool {
	for _, ch := range flags {
		if a.name == "mibtree" && ch != 'f' && ch != 'n' && ch != 'S' {
			return false
		}
		switch ch {
		case 'a':
			c.out.StringMode = smi.StringAscii
		case 'f':
			c.out.OIDMode = mib.LookupFull
		case 'n':
			c.out.OIDMode = mib.LookupNumeric
		case 'q':
			c.out.NoEquals = true
			c.out.NoHint = true
		case 'v':
			c.out.VarbindOnly = true
		case 'x':
			c.out.StringMode = smi.StringHex
		case 'S':
			c.out.OIDMode = mib.LookupShort
		case 'Q':
			c.out.NoHint = true
		default:
			return false
		}
	}
	return true
}

// parseCFlags handles the -C sub-options. The E sub-option consumes the
// following argument as the walk end OID; consumed reports how many extra
// arguments were taken.
func (c *cli) parseCFlags(a *app, flags string, following []string) (consumed int, ok bool) {
	isWalk := a.name == "walk" || a.name == "bulkwalk"
	isBulk := a.name == "bulkget" || a.name == "bulkwalk"

	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case 'c':
			if !isWalk {
				return 0, false
			}
			c.checkIncrease = false
		case 'i':
			if !isWalk {
				return 0, false
			}
			c.includeStart = true
		case 'p':
			if !isWalk {
				return 0, false
			}
			c.printSummary = true
		case 't':
			if a.name != "walk" {
				return 0, false
			}
			c.printTime = true
		case 'I':
			if a.name != "walk" {
				return 0, false
			}
			c.fallbackGet = false
		case 'E':
			if a.name != "walk" {
				return 0, false
			}
			if len(following) == 0 {
				return 0, false
			}
			c.endOid = following[0]
			return 1, true
		case 'n', 'r':
			if !isBulk {
				return 0, false
			}
			tail := flags[i+1:]
			end := 0
			for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
				end++
			}
			if end == 0 {
				cliutil.PrintError("-C%c: invalid argument", flags[i])
				return 0, false
			}
			v, err := strconv.ParseInt(tail[:end], 10, 32)
			if err != nil {
				cliutil.PrintError("-C%c: too large argument", flags[i])
				return 0, false
			}
			if flags[i] == 'n' {
				c.nonRepeaters = int32(v)
			} else {
				c.maxRepetitions = int32(v)
			}
			i += end
		default:
			return 0, false
		}
	}
	return 0, true
}

// open connects a session to the agent with the configured parameters.
func (c *cli) open(agent, defaultPort string) (*snmp.Session, error) {
	opts := []snmp.Option{
		snmp.WithCommunity(c.community),
		snmp.WithVersion(c.version),
		snmp.WithTimeout(c.timeout),
		snmp.WithRetries(c.retries),
	}
	if os.Getenv("SNMPC_DEBUG") != "" {
		opts = append(opts, snmp.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return snmp.Open(agent, defaultPort, opts...)
}

// parseOid resolves an OID argument, reporting the original spelling on
// failure.
func (c *cli) parseOid(s string) (mib.Oid, bool) {
	oid, err := c.mib.Parse(s)
	if err != nil {
		cliutil.PrintError("%s: Unknown object identifier", s)
		return nil, false
	}
	return oid, true
}

func (c *cli) print(vb snmp.Varbind) {
	fmt.Println(smi.FormatVarbind(c.mib, vb.Name, vb.Value, c.out))
}

func usage(a *app) {
	if a != nil {
		common := ""
		if a.common {
			common = commonUsage
		}
		sep := ""
		if a.usage != "" {
			sep = " "
		}
		fmt.Fprintf(os.Stderr, "usage: snmp %s%s%s%s\n", a.name, common, sep, a.usage)
		return
	}
	for i := range apps {
		prefix := "       "
		if i == 0 {
			prefix = "usage: "
		}
		common := ""
		if apps[i].common {
			common = commonUsage
		}
		fmt.Fprintf(os.Stderr, "%ssnmp %s%s %s\n", prefix, apps[i].name, common, apps[i].usage)
	}
}
