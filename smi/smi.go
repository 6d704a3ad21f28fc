// Package smi renders varbinds for display: typed value formatting with
// DISPLAY-HINT support, enumeration labels, and the numeric/short/full OID
// modes of the mib package.
package smi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golangsnmp/snmpc/ber"
	"github.com/golangsnmp/snmpc/mib"
)

// StringMode selects how OCTET STRING values without a usable display hint
// are rendered.
type StringMode int

const (
	StringDefault StringMode = iota // printable heuristic
	StringAscii                     // force quoted ASCII
	StringHex                       // force hex dump
)

// Options control varbind rendering. The zero value prints
// "oid = TYPE: value" lines with short symbolic OIDs and hints applied.
type Options struct {
	NoEquals    bool       // "oid value" instead of "oid = value"
	VarbindOnly bool       // print the value alone
	NoHint      bool       // ignore DISPLAY-HINT and type prefixes
	OIDMode     mib.Lookup // OID rendering mode
	StringMode  StringMode
}

// Exception placeholder texts, matching what management tools print.
const (
	textNoSuchObject   = "No Such Object available on this agent at this OID"
	textNoSuchInstance = "No Such Instance currently exists at this OID"
	textEndOfMibView   = "No more variables left in this MIB View (It is past the end of the MIB tree)"
)

// FormatVarbind renders a full output line (without trailing newline) for
// the varbind (name, value).
func FormatVarbind(m *mib.Mib, name mib.Oid, value *ber.Element, opts Options) string {
	val := FormatValue(m, name, value, opts)
	if opts.VarbindOnly {
		return val
	}
	oidStr := m.Format(name, opts.OIDMode)
	if opts.NoEquals {
		return oidStr + " " + val
	}
	return oidStr + " = " + val
}

// FormatValue renders the value of a varbind. The name is used to resolve
// the object's display metadata by longest-prefix match.
func FormatValue(m *mib.Mib, name mib.Oid, value *ber.Element, opts Options) string {
	switch value.Class {
	case ber.ClassUniversal:
		return formatUniversal(m, name, value, opts)
	case ber.ClassApplication:
		return formatApplication(m, value, opts)
	case ber.ClassContext:
		switch value.Tag {
		case ber.TagNoSuchObject:
			return textNoSuchObject
		case ber.TagNoSuchInstance:
			return textNoSuchInstance
		case ber.TagEndOfMibView:
			return textEndOfMibView
		}
	}
	return fmt.Sprintf("[%s tag %d]: %s", value.Class, value.Tag, hexPairs(value.Bytes))
}

func formatUniversal(m *mib.Mib, name mib.Oid, value *ber.Element, opts Options) string {
	switch value.Tag {
	case ber.TagInteger:
		v, err := value.Int64()
		if err != nil {
			return "[unreadable integer]"
		}
		return formatInteger(m, name, v, opts)
	case ber.TagOctetString:
		return formatOctetString(m, name, value.Bytes, opts)
	case ber.TagNull:
		return "NULL"
	case ber.TagObjectIdentifier:
		arcs, err := value.ObjectIdentifier()
		if err != nil {
			return "[unreadable OID]"
		}
		rendered := m.Format(mib.Oid(arcs), opts.OIDMode)
		return typed(opts, "OID", rendered)
	}
	return fmt.Sprintf("[universal tag %d]: %s", value.Tag, hexPairs(value.Bytes))
}

func formatApplication(m *mib.Mib, value *ber.Element, opts Options) string {
	switch value.Tag {
	case ber.TagIPAddress:
		addr, err := value.IPAddr()
		if err != nil {
			return "[unreadable IpAddress]"
		}
		quad := fmt.Sprintf("%d.%d.%d.%d", addr[0], addr[1], addr[2], addr[3])
		return typed(opts, "IpAddress", quad)
	case ber.TagCounter32, ber.TagGauge32, ber.TagCounter64:
		v, err := value.Uint64()
		if err != nil {
			return "[unreadable counter]"
		}
		label := "Counter32"
		switch value.Tag {
		case ber.TagGauge32:
			label = "Gauge32"
		case ber.TagCounter64:
			label = "Counter64"
		}
		return typed(opts, label, strconv.FormatUint(v, 10))
	case ber.TagTimeTicks:
		v, err := value.Uint64()
		if err != nil {
			return "[unreadable timeticks]"
		}
		if opts.NoHint {
			return strconv.FormatUint(v, 10)
		}
		return "Timeticks: " + formatTimeTicks(v)
	case ber.TagOpaque:
		return typed(opts, "Opaque", hexPairs(value.Bytes))
	}
	return fmt.Sprintf("[application tag %d]: %s", value.Tag, hexPairs(value.Bytes))
}

// formatInteger renders an INTEGER, using the object's enumeration labels
// when hints are enabled.
func formatInteger(m *mib.Mib, name mib.Oid, v int64, opts Options) string {
	if opts.NoHint {
		return strconv.FormatInt(v, 10)
	}
	if nd := m.ObjectFor(name); nd != nil && nd.Type() != nil {
		t := nd.Type()
		if label, ok := t.EnumLabel(v); ok {
			return fmt.Sprintf("INTEGER: %s(%d)", label, v)
		}
		if hint := t.DisplayHint(); hint != "" {
			if s, ok := applyIntegerHint(hint, v); ok {
				return "INTEGER: " + s
			}
		}
	}
	return "INTEGER: " + strconv.FormatInt(v, 10)
}

// formatOctetString renders an OCTET STRING: forced mode first, then the
// object's DISPLAY-HINT, then the printable heuristic.
func formatOctetString(m *mib.Mib, name mib.Oid, b []byte, opts Options) string {
	switch opts.StringMode {
	case StringAscii:
		return typed(opts, "STRING", strconv.Quote(string(b)))
	case StringHex:
		return typed(opts, "Hex-STRING", hexPairs(b))
	}
	if !opts.NoHint {
		if nd := m.ObjectFor(name); nd != nil && nd.Type() != nil {
			if hint := nd.Type().DisplayHint(); hint != "" {
				if s, quoted, ok := applyOctetHint(hint, b); ok {
					if quoted {
						s = `"` + s + `"`
					}
					return "STRING: " + s
				}
			}
		}
	}
	if isPrintable(b) {
		return typed(opts, "STRING", `"`+string(b)+`"`)
	}
	return typed(opts, "Hex-STRING", hexPairs(b))
}

// typed prefixes a value with its type label unless hints are disabled.
func typed(opts Options, label, value string) string {
	if opts.NoHint {
		return value
	}
	return label + ": " + value
}

// formatTimeTicks renders hundredths of a second as "(N) d:hh:mm:ss.cc".
func formatTimeTicks(v uint64) string {
	centis := v % 100
	secs := v / 100
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	mins := secs / 60
	secs %= 60
	return fmt.Sprintf("(%d) %d:%02d:%02d:%02d.%02d", v, days, hours, mins, secs, centis)
}

func isPrintable(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	for _, c := range b {
		if c == '\n' || c == '\r' || c == '\t' {
			continue
		}
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// hexPairs renders bytes as uppercase pairs separated by spaces.
func hexPairs(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
