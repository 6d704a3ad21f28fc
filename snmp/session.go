package snmp

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"time"
)

// Default session parameters, matching the CLI defaults.
const (
	DefaultCommunity = "public"
	DefaultTimeout   = 1 * time.Second
	DefaultRetries   = 5
)

// Session is a connected conversation with one agent. A session carries a
// single request at a time; concurrent use requires separate sessions.
type Session struct {
	conn      *Conn
	version   Version
	community string
	timeout   time.Duration
	retries   int
	nextID    int32
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithCommunity sets the community string (default "public").
func WithCommunity(community string) Option {
	return func(s *Session) { s.community = community }
}

// WithVersion sets the protocol version (default V2c).
func WithVersion(v Version) Option {
	return func(s *Session) { s.version = v }
}

// WithTimeout sets the per-attempt response timeout (default 1s).
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithRetries sets the number of retransmissions after the first attempt
// (default 5).
func WithRetries(n int) Option {
	return func(s *Session) { s.retries = n }
}

// WithLogger sets the logger for wire-level debug output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Open parses the agent specifier, connects, and returns a ready session.
func Open(agent, defaultPort string, opts ...Option) (*Session, error) {
	conn, err := Dial(agent, defaultPort)
	if err != nil {
		return nil, err
	}
	return NewSession(conn, opts...), nil
}

// NewSession wraps an existing connection. Used by Open and by tests that
// pipe a session to an in-process agent.
func NewSession(conn *Conn, opts ...Option) *Session {
	s := &Session{
		conn:      conn,
		version:   V2c,
		community: DefaultCommunity,
		timeout:   DefaultTimeout,
		retries:   DefaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the session's protocol version.
func (s *Session) Version() Version { return s.version }

// Close releases the socket.
func (s *Session) Close() error {
	return s.conn.Close()
}

// requestID returns the next request identifier, wrapping past the int32
// maximum back to 1.
func (s *Session) requestID() int32 {
	if s.nextID == math.MaxInt32 {
		s.nextID = 0
	}
	s.nextID++
	return s.nextID
}

// RoundTrip sends the PDU and waits for the matching response. The PDU's
// RequestID is assigned here. Frames whose request-id, version, or
// community do not match are discarded without resetting the attempt
// deadline. Every attempt exhausted means ErrTimeout.
func (s *Session) RoundTrip(p *PDU) (*PDU, error) {
	p.RequestID = s.requestID()
	msg, err := encodeMessage(s.version, s.community, p)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			s.log("retransmit", "attempt", attempt, "request-id", p.RequestID)
		}
		if err := s.conn.WriteMessage(msg); err != nil {
			return nil, fmt.Errorf("send: %w", err)
		}
		resp, err := s.awaitResponse(p.RequestID)
		if err == nil {
			return resp, nil
		}
		if !isTimeout(err) {
			return nil, err
		}
	}
	return nil, ErrTimeout
}

// awaitResponse reads frames until one matches the outstanding request or
// the attempt deadline expires.
func (s *Session) awaitResponse(requestID int32) (*PDU, error) {
	deadline := time.Now().Add(s.timeout)
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	for {
		buf, err := s.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		version, community, resp, err := decodeMessage(buf)
		if err != nil {
			s.log("discarding undecodable frame", "err", err)
			continue
		}
		switch {
		case resp.Type != GetResponse:
			s.log("discarding non-response PDU", "type", resp.Type)
		case resp.RequestID != requestID:
			s.log("discarding response with wrong request-id",
				"got", resp.RequestID, "want", requestID)
		case version != s.version:
			s.log("discarding response with wrong version", "got", version)
		case community != s.community:
			s.log("discarding response with wrong community")
		default:
			return resp, nil
		}
	}
}

// send transmits a PDU without awaiting a reply (traps).
func (s *Session) send(p *PDU) error {
	p.RequestID = s.requestID()
	msg, err := encodeMessage(s.version, s.community, p)
	if err != nil {
		return err
	}
	return s.conn.WriteMessage(msg)
}

func (s *Session) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
