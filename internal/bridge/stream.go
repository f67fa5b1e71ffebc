package bridge

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Stream carries newline-delimited envelopes over a reader and writer.
// Send is safe for concurrent use; Receive is not.
type Stream struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex
}

// NewStream creates a stream over r and w.
func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{reader: bufio.NewReader(r), writer: w}
}

// Send encodes m and writes it followed by a newline.
func (s *Stream) Send(m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", m.MessageType(), err)
	}
	return nil
}

// Receive reads and decodes the next envelope, skipping blank lines. It
// returns io.EOF once the reader is exhausted. Decode failures leave the
// stream usable.
func (s *Stream) Receive() (Message, error) {
	return s.receive(Decode)
}

func (s *Stream) receive(decode func([]byte) (Message, error)) (Message, error) {
	for {
		line, err := s.reader.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			m, decodeErr := decode(line)
			if decodeErr != nil {
				return nil, decodeErr
			}
			return m, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// IsDecodeError reports whether err came from a bad envelope rather than the
// underlying reader.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrUnknownType) || errors.Is(err, ErrInvalidMessage)
}

type received struct {
	msg Message
	err error
}

// RemoteHost is a Poster for a host on the other end of a Stream. One request
// is in flight at a time; replies that do not answer it are discarded.
type RemoteHost struct {
	stream  *Stream
	replies chan received
	done    chan struct{}
	quit    chan struct{}

	reqMu     sync.Mutex
	closeOnce sync.Once

	mu      sync.Mutex
	readErr error
}

// NewRemoteHost starts reading replies from s.
func NewRemoteHost(s *Stream) *RemoteHost {
	h := &RemoteHost{
		stream:  s,
		replies: make(chan received, 16),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
	}
	go h.readLoop()
	return h
}

func (h *RemoteHost) readLoop() {
	defer close(h.done)
	for {
		m, err := h.stream.Receive()
		if err != nil && !IsDecodeError(err) {
			h.mu.Lock()
			h.readErr = err
			h.mu.Unlock()
			return
		}
		select {
		case h.replies <- received{msg: m, err: err}:
		case <-h.quit:
			return
		}
	}
}

// Post sends m and, if m has a reply type, waits for that reply.
func (h *RemoteHost) Post(ctx context.Context, m Outbound) (Inbound, error) {
	h.reqMu.Lock()
	defer h.reqMu.Unlock()

	h.drain()
	if err := h.stream.Send(m); err != nil {
		return nil, err
	}

	want, ok := ReplyType(m.MessageType())
	if !ok {
		return nil, nil
	}

	for {
		select {
		case r := <-h.replies:
			if r.err != nil {
				return nil, r.err
			}
			in, isInbound := r.msg.(Inbound)
			if !isInbound {
				return nil, fmt.Errorf("%w: host sent %s", ErrWrongDirection, r.msg.MessageType())
			}
			if in.MessageType() != want {
				continue
			}
			return in, nil
		case <-h.done:
			return nil, fmt.Errorf("waiting for %s: %w", want, h.err())
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// drain drops replies left over from cancelled requests.
func (h *RemoteHost) drain() {
	for {
		select {
		case <-h.replies:
		default:
			return
		}
	}
}

func (h *RemoteHost) err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.readErr == nil || errors.Is(h.readErr, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return h.readErr
}

// Close stops delivering replies. It does not close the underlying stream.
func (h *RemoteHost) Close() error {
	h.closeOnce.Do(func() { close(h.quit) })
	return nil
}

// Serve reads outbound messages from s, dispatches them to h and writes each
// reply back. Undecodable lines are reported to onError and skipped. Outbound
// messages that fail validation are reported and still dispatched, so h
// answers them with a failed reply. It returns nil when the reader is
// exhausted.
func Serve(ctx context.Context, s *Stream, h OutboundHandler, onError func(error)) error {
	report := func(err error) {
		if onError != nil {
			onError(err)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m, err := s.receive(decodeUnchecked)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if IsDecodeError(err) {
				report(err)
				continue
			}
			return err
		}

		out, ok := m.(Outbound)
		if !ok {
			report(fmt.Errorf("%w: %s is a reply", ErrWrongDirection, m.MessageType()))
			continue
		}
		if err := out.Validate(); err != nil {
			report(err)
		}

		reply, err := DispatchOutbound(ctx, h, out)
		if err != nil {
			report(err)
			continue
		}
		if reply == nil {
			continue
		}
		if err := s.Send(reply); err != nil {
			return err
		}
	}
}
