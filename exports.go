// Package snmpc provides an SNMPv1/v2c client: BER codec, OID model and
// symbol table, agent sessions with retransmission, the GET family of
// operations, subtree walking, and varbind rendering.
package snmpc

import (
	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
	"github.com/golangsnmp/snmpc/smi"
	"github.com/golangsnmp/snmpc/snmp"
)

// Type aliases for the public API - all types come from the subpackages.

// Session is a connected conversation with one agent.
type Session = snmp.Session

// Option configures a Session.
type Option = snmp.Option

// Version selects the SNMP protocol version of a session.
type Version = snmp.Version

// Protocol versions.
const (
	V1  = snmp.V1
	V2c = snmp.V2c
)

// PDU is a protocol data unit.
type PDU = snmp.PDU

// Varbind is a single variable binding.
type Varbind = snmp.Varbind

// Walker enumerates a subtree in lexicographic order.
type Walker = snmp.Walker

// Endpoint is a parsed agent specifier.
type Endpoint = snmp.Endpoint

// Oid is a sequence of arc values representing an Object Identifier.
type Oid = mib.Oid

// Mib is the symbol table.
type Mib = mib.Mib

// Element is a BER element.
type Element = ber.Element

// PrintOptions control varbind rendering.
type PrintOptions = smi.Options

// Session constructors.
var (
	Open       = snmp.Open
	Dial       = snmp.Dial
	ParseAgent = snmp.ParseAgent
)

// Session options.
var (
	WithCommunity = snmp.WithCommunity
	WithVersion   = snmp.WithVersion
	WithTimeout   = snmp.WithTimeout
	WithRetries   = snmp.WithRetries
	WithLogger    = snmp.WithLogger
)

// Baseline returns the compiled-in symbol table.
var Baseline = mib.Baseline

// FormatVarbind renders a varbind for display.
var FormatVarbind = smi.FormatVarbind
