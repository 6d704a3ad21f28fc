package main

import (
	"github.com/golangsnmp/snmpc/cmd/internal/cliutil"
	"github.com/golangsnmp/snmpc/mib"
	"github.com/golangsnmp/snmpc/snmp"
)

// cmdGet implements the get, getnext, and bulkget subcommands.
func (c *cli) cmdGet(name string, args []string) int {
	if len(args) < 2 {
		usage(findApp(name))
		return exitError
	}
	agent, oidArgs := args[0], args[1:]

	if name == "bulkget" {
		if c.version < snmp.V2c {
			return cliutil.Errorf("Cannot send V2 PDU on V1 session")
		}
		if int(c.nonRepeaters) > len(oidArgs) {
			return cliutil.Errorf("need more objects than -Cn<num>")
		}
	}

	oids := make([]mib.Oid, 0, len(oidArgs))
	for _, arg := range oidArgs {
		oid, ok := c.parseOid(arg)
		if !ok {
			return exitError
		}
		oids = append(oids, oid)
	}

	sess, err := c.open(agent, "161")
	if err != nil {
		return cliutil.Errorf("%s: %v", name, err)
	}
	defer sess.Close()

	var resp *snmp.PDU
	switch name {
	case "getnext":
		resp, err = sess.GetNext(oids...)
	case "bulkget":
		resp, err = sess.GetBulk(oids, c.nonRepeaters, c.maxRepetitions)
	default:
		resp, err = sess.Get(oids...)
	}
	if err != nil {
		return cliutil.Errorf("%s: %v", name, err)
	}

	if err := snmp.CheckStatus(resp, oidArgs, ""); err != nil {
		return cliutil.Errorf("%v", err)
	}
	for _, vb := range resp.Varbinds {
		c.print(vb)
	}
	return exitOK
}

func findApp(name string) *app {
	for i := range apps {
		if apps[i].name == name {
			return &apps[i]
		}
	}
	return nil
}
