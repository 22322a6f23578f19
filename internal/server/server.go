package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"parkscout/internal/config"
	"parkscout/internal/wire"
)

type server struct {
	ln    net.Listener
	codec *wire.Codec
	rt    *Router
	log   zerolog.Logger

	// sem holds one token per in-flight connection. A slot is taken before
	// Accept, so excess connections wait in the OS backlog rather than in
	// application memory.
	sem chan struct{}
	wg  sync.WaitGroup
}

// Start binds the TCP listener and begins accepting connections, each served
// by one pooled worker for its whole lifetime. It returns the bound address
// (useful when the config asks for port 0) and a shutdown function that stops
// accepting and waits for in-flight connections up to the context deadline.
func Start(cfg *config.Config, codec *wire.Codec, rt *Router, log zerolog.Logger) (string, func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return "", nil, err
	}

	s := &server{
		ln:    ln,
		codec: codec,
		rt:    rt,
		log:   log,
		sem:   make(chan struct{}, cfg.Server.MaxWorkers),
	}
	go s.acceptLoop()

	return ln.Addr().String(), func(ctx context.Context) error {
		_ = ln.Close()
		done := make(chan struct{})
		go func() { s.wg.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}, nil
}

func (s *server) acceptLoop() {
	for {
		s.sem <- struct{}{}
		conn, err := s.ln.Accept()
		if err != nil {
			<-s.sem
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("accept failed")
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-s.sem }()
			s.handleConn(conn)
		}()
	}
}

// handleConn owns one connection: read a frame, dispatch, write the response,
// repeat until the peer disconnects or a protocol error occurs. Every exit
// path closes the socket and releases the worker slot; a panic in one
// connection must never reach the accept loop.
func (s *server) handleConn(conn net.Conn) {
	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("client connected")
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("connection handler panicked")
		}
		_ = conn.Close()
		log.Info().Msg("client disconnected")
	}()

	for {
		payload, err := wire.ReadFrame(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var perr *wire.ProtocolError
			if errors.As(err, &perr) && !errors.Is(err, io.ErrUnexpectedEOF) {
				log.Warn().Err(err).Msg("malformed frame")
				s.writeError(conn, "Malformed frame.")
			}
			return
		}

		plain, err := s.codec.Decode(payload)
		if err != nil {
			log.Warn().Err(err).Msg("undecodable payload")
			s.writeError(conn, "Unable to decode request.")
			return
		}

		resp := s.rt.Dispatch(context.Background(), plain)
		if err := s.writeEnvelope(conn, resp); err != nil {
			log.Warn().Err(err).Msg("write response failed")
			return
		}
	}
}

// writeError sends a single error envelope. Used on the protocol-error path
// right before the connection is closed; write failures are ignored since the
// peer is likely already gone.
func (s *server) writeError(conn net.Conn, msg string) {
	_ = s.writeEnvelope(conn, errEnvelope(msg))
}

func (s *server) writeEnvelope(conn net.Conn, env map[string]any) error {
	out, err := s.codec.Encode(env)
	if err != nil {
		return err
	}
	return wire.WriteFrame(conn, out)
}
