package mib

import "sync"

// Baseline returns the compiled-in symbol table covering the well-known
// SMI skeleton and the core IETF modules the client renders most often:
// SNMPv2-MIB, IF-MIB, IP-MIB heads, and HOST-RESOURCES-MIB's system group.
// The table is built once and shared; it is immutable.
var Baseline = sync.OnceValue(buildBaseline)

func oid(arcs ...uint32) Oid { return Oid(arcs) }

// Base textual conventions from SNMPv2-TC (RFC 2579).
var (
	tcDisplayString = TextualConvention("DisplayString", BaseOctetString, "255a")
	tcPhysAddress   = TextualConvention("PhysAddress", BaseOctetString, "1x:")
	tcMacAddress    = TextualConvention("MacAddress", BaseOctetString, "1x:")
	tcDateAndTime   = TextualConvention("DateAndTime", BaseOctetString, "2d-1d-1d,1d:1d:1d.1d,1a1d:1d")
	tcTimeStamp     = NewType("TimeStamp", BaseTimeTicks)
	tcTruthValue    = NewType("TruthValue", BaseInteger32).WithEnums(
		NamedValue{"true", 1}, NamedValue{"false", 2},
	)
)

func buildBaseline() *Mib {
	b := NewBuilder()

	for _, tc := range []*Type{
		tcDisplayString, tcPhysAddress, tcMacAddress,
		tcDateAndTime, tcTimeStamp, tcTruthValue,
	} {
		b.AddType(tc)
	}

	b.Module("SNMPv2-SMI").
		AddNode("ccitt", oid(0)).
		AddNode("iso", oid(1)).
		AddNode("joint-iso-ccitt", oid(2)).
		AddNode("org", oid(1, 3)).
		AddNode("dod", oid(1, 3, 6)).
		AddNode("internet", oid(1, 3, 6, 1)).
		AddNode("directory", oid(1, 3, 6, 1, 1)).
		AddNode("mgmt", oid(1, 3, 6, 1, 2)).
		AddNode("mib-2", oid(1, 3, 6, 1, 2, 1)).
		AddNode("transmission", oid(1, 3, 6, 1, 2, 1, 10)).
		AddNode("experimental", oid(1, 3, 6, 1, 3)).
		AddNode("private", oid(1, 3, 6, 1, 4)).
		AddNode("enterprises", oid(1, 3, 6, 1, 4, 1)).
		AddNode("security", oid(1, 3, 6, 1, 5)).
		AddNode("snmpV2", oid(1, 3, 6, 1, 6)).
		AddNode("snmpDomains", oid(1, 3, 6, 1, 6, 1)).
		AddNode("snmpProxys", oid(1, 3, 6, 1, 6, 2)).
		AddNode("snmpModules", oid(1, 3, 6, 1, 6, 3))

	addSystemGroup(b)
	addInterfacesGroup(b)
	addIPHeads(b)
	addSnmpGroup(b)
	addSnmpMIB(b)
	addIfMIB(b)
	addHostResources(b)

	return b.Mib()
}

// addSystemGroup registers SNMPv2-MIB system (1.3.6.1.2.1.1).
func addSystemGroup(b *Builder) {
	sys := oid(1, 3, 6, 1, 2, 1, 1)
	b.Module("SNMPv2-MIB").
		AddNode("system", sys).
		AddScalar("sysDescr", sys.Child(1), tcDisplayString).
		AddScalar("sysObjectID", sys.Child(2), NewType("", BaseObjectIdentifier)).
		AddScalar("sysUpTime", sys.Child(3), NewType("", BaseTimeTicks)).
		AddScalar("sysContact", sys.Child(4), tcDisplayString).
		AddScalar("sysName", sys.Child(5), tcDisplayString).
		AddScalar("sysLocation", sys.Child(6), tcDisplayString).
		AddScalar("sysServices", sys.Child(7), NewType("", BaseInteger32)).
		AddScalar("sysORLastChange", sys.Child(8), tcTimeStamp)

	orTable := sys.Child(9)
	orEntry := orTable.Child(1)
	b.Add("sysORTable", orTable, KindTable, nil).
		Add("sysOREntry", orEntry, KindRow, nil).
		AddColumn("sysORIndex", orEntry.Child(1), NewType("", BaseInteger32)).
		AddColumn("sysORID", orEntry.Child(2), NewType("", BaseObjectIdentifier)).
		AddColumn("sysORDescr", orEntry.Child(3), tcDisplayString).
		AddColumn("sysORUpTime", orEntry.Child(4), tcTimeStamp)
}

// addInterfacesGroup registers the IF-MIB interfaces group (1.3.6.1.2.1.2).
func addInterfacesGroup(b *Builder) {
	ifs := oid(1, 3, 6, 1, 2, 1, 2)
	entry := ifs.Child(2).Child(1)

	statusEnums := []NamedValue{{"up", 1}, {"down", 2}, {"testing", 3}}
	operEnums := append(statusEnums[:3:3],
		NamedValue{"unknown", 4}, NamedValue{"dormant", 5},
		NamedValue{"notPresent", 6}, NamedValue{"lowerLayerDown", 7})

	b.Module("IF-MIB").
		AddNode("interfaces", ifs).
		AddScalar("ifNumber", ifs.Child(1), NewType("", BaseInteger32)).
		Add("ifTable", ifs.Child(2), KindTable, nil).
		Add("ifEntry", entry, KindRow, nil).
		AddColumn("ifIndex", entry.Child(1), NewType("InterfaceIndex", BaseInteger32)).
		AddColumn("ifDescr", entry.Child(2), tcDisplayString).
		AddColumn("ifType", entry.Child(3), NewType("IANAifType", BaseInteger32).WithEnums(
			NamedValue{"other", 1}, NamedValue{"ethernetCsmacd", 6},
			NamedValue{"softwareLoopback", 24}, NamedValue{"tunnel", 131},
			NamedValue{"l2vlan", 135}, NamedValue{"ieee8023adLag", 161},
		)).
		AddColumn("ifMtu", entry.Child(4), NewType("", BaseInteger32)).
		AddColumn("ifSpeed", entry.Child(5), NewType("", BaseGauge32)).
		AddColumn("ifPhysAddress", entry.Child(6), tcPhysAddress).
		AddColumn("ifAdminStatus", entry.Child(7), NewType("", BaseInteger32).WithEnums(statusEnums...)).
		AddColumn("ifOperStatus", entry.Child(8), NewType("", BaseInteger32).WithEnums(operEnums...)).
		AddColumn("ifLastChange", entry.Child(9), tcTimeStamp).
		AddColumn("ifInOctets", entry.Child(10), NewType("", BaseCounter32)).
		AddColumn("ifInUcastPkts", entry.Child(11), NewType("", BaseCounter32)).
		AddColumn("ifInNUcastPkts", entry.Child(12), NewType("", BaseCounter32)).
		AddColumn("ifInDiscards", entry.Child(13), NewType("", BaseCounter32)).
		AddColumn("ifInErrors", entry.Child(14), NewType("", BaseCounter32)).
		AddColumn("ifInUnknownProtos", entry.Child(15), NewType("", BaseCounter32)).
		AddColumn("ifOutOctets", entry.Child(16), NewType("", BaseCounter32)).
		AddColumn("ifOutUcastPkts", entry.Child(17), NewType("", BaseCounter32)).
		AddColumn("ifOutNUcastPkts", entry.Child(18), NewType("", BaseCounter32)).
		AddColumn("ifOutDiscards", entry.Child(19), NewType("", BaseCounter32)).
		AddColumn("ifOutErrors", entry.Child(20), NewType("", BaseCounter32)).
		AddColumn("ifOutQLen", entry.Child(21), NewType("", BaseGauge32)).
		AddColumn("ifSpecific", entry.Child(22), NewType("", BaseObjectIdentifier))
}

// addIPHeads registers the mib-2 group heads commonly seen while walking.
func addIPHeads(b *Builder) {
	b.Module("IP-MIB").
		AddNode("at", oid(1, 3, 6, 1, 2, 1, 3)).
		AddNode("ip", oid(1, 3, 6, 1, 2, 1, 4)).
		AddScalar("ipForwarding", oid(1, 3, 6, 1, 2, 1, 4, 1), NewType("", BaseInteger32).WithEnums(
			NamedValue{"forwarding", 1}, NamedValue{"notForwarding", 2},
		)).
		AddScalar("ipDefaultTTL", oid(1, 3, 6, 1, 2, 1, 4, 2), NewType("", BaseInteger32)).
		AddNode("icmp", oid(1, 3, 6, 1, 2, 1, 5)).
		AddNode("tcp", oid(1, 3, 6, 1, 2, 1, 6)).
		AddNode("udp", oid(1, 3, 6, 1, 2, 1, 7))
}

// addSnmpGroup registers the mib-2 snmp statistics group (1.3.6.1.2.1.11).
func addSnmpGroup(b *Builder) {
	snmp := oid(1, 3, 6, 1, 2, 1, 11)
	b.Module("SNMPv2-MIB").
		AddNode("snmp", snmp).
		AddScalar("snmpInPkts", snmp.Child(1), NewType("", BaseCounter32)).
		AddScalar("snmpOutPkts", snmp.Child(2), NewType("", BaseCounter32)).
		AddScalar("snmpInBadVersions", snmp.Child(3), NewType("", BaseCounter32)).
		AddScalar("snmpInBadCommunityNames", snmp.Child(4), NewType("", BaseCounter32)).
		AddScalar("snmpInBadCommunityUses", snmp.Child(5), NewType("", BaseCounter32)).
		AddScalar("snmpInASNParseErrs", snmp.Child(6), NewType("", BaseCounter32)).
		AddScalar("snmpEnableAuthenTraps", snmp.Child(30), NewType("", BaseInteger32).WithEnums(
			NamedValue{"enabled", 1}, NamedValue{"disabled", 2},
		)).
		AddScalar("snmpSilentDrops", snmp.Child(31), NewType("", BaseCounter32)).
		AddScalar("snmpProxyDrops", snmp.Child(32), NewType("", BaseCounter32))
}

// addSnmpMIB registers snmpModules.snmpMIB (1.3.6.1.6.3.1): the trap
// plumbing objects and the generic notifications.
func addSnmpMIB(b *Builder) {
	mibObjects := oid(1, 3, 6, 1, 6, 3, 1, 1)
	trap := mibObjects.Child(4)
	traps := mibObjects.Child(5)
	b.Module("SNMPv2-MIB").
		AddNode("snmpMIB", oid(1, 3, 6, 1, 6, 3, 1)).
		AddNode("snmpMIBObjects", mibObjects).
		AddNode("snmpTrap", trap).
		AddScalar("snmpTrapOID", trap.Child(1), NewType("", BaseObjectIdentifier)).
		AddScalar("snmpTrapEnterprise", trap.Child(3), NewType("", BaseObjectIdentifier)).
		AddNode("snmpTraps", traps).
		Add("coldStart", traps.Child(1), KindNotification, nil).
		Add("warmStart", traps.Child(2), KindNotification, nil).
		Add("linkDown", traps.Child(3), KindNotification, nil).
		Add("linkUp", traps.Child(4), KindNotification, nil).
		Add("authenticationFailure", traps.Child(5), KindNotification, nil)
}

// addIfMIB registers the IF-MIB extension table core (1.3.6.1.2.1.31).
func addIfMIB(b *Builder) {
	ifMIB := oid(1, 3, 6, 1, 2, 1, 31)
	entry := ifMIB.Child(1).Child(1).Child(1)
	b.Module("IF-MIB").
		AddNode("ifMIB", ifMIB).
		AddNode("ifMIBObjects", ifMIB.Child(1)).
		Add("ifXTable", ifMIB.Child(1).Child(1), KindTable, nil).
		Add("ifXEntry", entry, KindRow, nil).
		AddColumn("ifName", entry.Child(1), tcDisplayString).
		AddColumn("ifInMulticastPkts", entry.Child(2), NewType("", BaseCounter32)).
		AddColumn("ifInBroadcastPkts", entry.Child(3), NewType("", BaseCounter32)).
		AddColumn("ifOutMulticastPkts", entry.Child(4), NewType("", BaseCounter32)).
		AddColumn("ifOutBroadcastPkts", entry.Child(5), NewType("", BaseCounter32)).
		AddColumn("ifHCInOctets", entry.Child(6), NewType("", BaseCounter64)).
		AddColumn("ifHCInUcastPkts", entry.Child(7), NewType("", BaseCounter64)).
		AddColumn("ifHCOutOctets", entry.Child(10), NewType("", BaseCounter64)).
		AddColumn("ifHCOutUcastPkts", entry.Child(11), NewType("", BaseCounter64)).
		AddColumn("ifHighSpeed", entry.Child(15), NewType("", BaseGauge32)).
		AddColumn("ifPromiscuousMode", entry.Child(16), tcTruthValue).
		AddColumn("ifConnectorPresent", entry.Child(17), tcTruthValue).
		AddColumn("ifAlias", entry.Child(18), tcDisplayString)
}

// addHostResources registers the HOST-RESOURCES-MIB system group
// (1.3.6.1.2.1.25.1).
func addHostResources(b *Builder) {
	host := oid(1, 3, 6, 1, 2, 1, 25)
	hrSystem := host.Child(1)
	b.Module("HOST-RESOURCES-MIB").
		AddNode("host", host).
		AddNode("hrSystem", hrSystem).
		AddScalar("hrSystemUptime", hrSystem.Child(1), NewType("", BaseTimeTicks)).
		AddScalar("hrSystemDate", hrSystem.Child(2), tcDateAndTime).
		AddScalar("hrSystemInitialLoadDevice", hrSystem.Child(3), NewType("", BaseInteger32)).
		AddScalar("hrSystemNumUsers", hrSystem.Child(5), NewType("", BaseGauge32)).
		AddScalar("hrSystemProcesses", hrSystem.Child(6), NewType("", BaseGauge32)).
		AddScalar("hrSystemMaxProcesses", hrSystem.Child(7), NewType("", BaseInteger32))
}
