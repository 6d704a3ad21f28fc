package snmp

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Endpoint is a parsed agent specifier: a Go network name ("udp4", "tcp6",
// "unix") and a dial address.
type Endpoint struct {
	Network string
	Address string
}

// Stream reports whether the transport is stream-oriented and therefore
// frames messages with a 2-byte length prefix.
func (e Endpoint) Stream() bool {
	return strings.HasPrefix(e.Network, "tcp") || e.Network == "unix"
}

// ParseAgent parses an agent specifier:
//
//	host                  UDP/IPv4
//	host:port             UDP/IPv4
//	udp:host[:port]       UDP/IPv4
//	tcp:host[:port]       TCP/IPv4
//	udp6:[addr]:port      UDP/IPv6 (aliases udpv6, udpipv6)
//	tcp6:[addr]:port      TCP/IPv6 (aliases tcpv6, tcpipv6)
//	unix:/path            UNIX stream socket
//
// IPv6 hosts take the bracket form when a port is present. When no port is
// given, defaultPort is used.
func ParseAgent(spec, defaultPort string) (Endpoint, error) {
	transport := "udp4"
	rest := spec

	if prefix, tail, ok := strings.Cut(spec, ":"); ok {
		switch strings.ToLower(prefix) {
		case "udp":
			transport, rest = "udp4", tail
		case "tcp":
			transport, rest = "tcp4", tail
		case "udp6", "udpv6", "udpipv6":
			transport, rest = "udp6", tail
		case "tcp6", "tcpv6", "tcpipv6":
			transport, rest = "tcp6", tail
		case "unix":
			if tail == "" {
				return Endpoint{}, &AddressError{Spec: spec, Reason: "empty socket path"}
			}
			return Endpoint{Network: "unix", Address: tail}, nil
		default:
			// No transport specifier: the colon separates host and port.
		}
	}
	if rest == "" {
		return Endpoint{}, &AddressError{Spec: spec, Reason: "empty host"}
	}

	host, port, err := splitHostPort(rest, transport)
	if err != nil {
		return Endpoint{}, &AddressError{Spec: spec, Reason: err.Error()}
	}
	if port == "" {
		port = defaultPort
	}
	return Endpoint{Network: transport, Address: net.JoinHostPort(host, port)}, nil
}

// splitHostPort separates an optional port from the host part. IPv6 hosts
// use the [addr]:port bracket form; a bare IPv6 address is accepted
// without a port.
func splitHostPort(s, transport string) (host, port string, err error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", fmt.Errorf("missing ] in address")
		}
		host = s[1:end]
		tail := s[end+1:]
		if tail == "" {
			return host, "", nil
		}
		if !strings.HasPrefix(tail, ":") || len(tail) == 1 {
			return "", "", fmt.Errorf("garbage after ]")
		}
		return host, tail[1:], nil
	}

	if strings.Count(s, ":") > 1 {
		// Bare IPv6 address, no port.
		if strings.HasSuffix(transport, "6") {
			return s, "", nil
		}
		return "", "", fmt.Errorf("too many colons in address")
	}
	if host, port, ok := strings.Cut(s, ":"); ok {
		if host == "" || port == "" {
			return "", "", fmt.Errorf("empty host or port")
		}
		return host, port, nil
	}
	return s, "", nil
}

// Conn is a connected transport to one agent. Stream transports carry each
// message behind a 2-byte big-endian length prefix; datagram transports map
// one message to one datagram.
type Conn struct {
	net.Conn
	stream bool
	rbuf   []byte
}

// maxMessageSize bounds a single SNMP message in either direction.
const maxMessageSize = 64 * 1024

// Dial parses an agent specifier, resolves it, and connects. Resolution
// candidates are tried in order; the first that connects wins.
func Dial(spec, defaultPort string) (*Conn, error) {
	ep, err := ParseAgent(spec, defaultPort)
	if err != nil {
		return nil, err
	}
	c, err := net.Dial(ep.Network, ep.Address)
	if err != nil {
		return nil, fmt.Errorf("Can't connect to %s: %w", spec, err)
	}
	return &Conn{Conn: c, stream: ep.Stream()}, nil
}

// WriteMessage sends one encoded SNMP message.
func (c *Conn) WriteMessage(msg []byte) error {
	if !c.stream {
		_, err := c.Write(msg)
		return err
	}
	if len(msg) > 0xffff {
		return fmt.Errorf("snmp: message of %d bytes exceeds frame limit", len(msg))
	}
	frame := make([]byte, 2+len(msg))
	binary.BigEndian.PutUint16(frame, uint16(len(msg)))
	copy(frame[2:], msg)
	_, err := c.Write(frame)
	return err
}

// ReadMessage receives one message, honoring the deadline set on the
// connection. The returned slice is owned by the caller.
func (c *Conn) ReadMessage() ([]byte, error) {
	if !c.stream {
		if c.rbuf == nil {
			c.rbuf = make([]byte, maxMessageSize)
		}
		n, err := c.Read(c.rbuf)
		if err != nil {
			return nil, err
		}
		msg := make([]byte, n)
		copy(msg, c.rbuf[:n])
		return msg, nil
	}

	var hdr [2]byte
	if _, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
		return nil, err
	}
	msg := make([]byte, binary.BigEndian.Uint16(hdr[:]))
	if _, err := io.ReadFull(c.Conn, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SetReadDeadlineIn arms the read deadline d from now.
func (c *Conn) SetReadDeadlineIn(d time.Duration) error {
	return c.SetReadDeadline(time.Now().Add(d))
}
