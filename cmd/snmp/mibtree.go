package main

import "fmt"

// cmdMibtree dumps every node of the compiled-in MIB tree in OID order,
// rendered in the selected -O mode.
func (c *cli) cmdMibtree(name string, args []string) int {
	if len(args) != 0 {
		usage(findApp(name))
		return exitError
	}
	for nd := range c.mib.Nodes() {
		fmt.Println(c.mib.Format(nd.OID(), c.out.OIDMode))
	}
	return exitOK
}
