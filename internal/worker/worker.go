// Package worker answers squiggle requests over NATS request/reply.
//
// Subjects, with the default prefix "squiggle":
//
//	squiggle.svg       payload: seed hex   reply: SVG document
//	squiggle.metadata  payload: seed hex   reply: metadata data URI
//	squiggle.token     payload: token id   reply: token URI
//
// Failed requests are answered with an empty body and the Squiggle-Error /
// Squiggle-Error-Code headers. Workers join a queue group so several
// instances share the load.
package worker

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/pipeline"
)

const (
	// NatsConnectTimeout bounds the initial connection attempt.
	NatsConnectTimeout = 10 * time.Second
	// NatsMaxReconnectAttempts is the reconnect budget after a disconnect.
	NatsMaxReconnectAttempts = 5
)

// Reply headers.
const (
	HeaderRequestID = "Squiggle-Request-Id"
	HeaderError     = "Squiggle-Error"
	HeaderErrorCode = "Squiggle-Error-Code"
)

// Request kinds, appended to the subject prefix.
const (
	KindSVG      = "svg"
	KindMetadata = "metadata"
	KindToken    = "token"
)

// Kinds lists every subject suffix the worker serves.
var Kinds = []string{KindSVG, KindMetadata, KindToken}

// Options configures a Worker.
type Options struct {
	Subject string // subject prefix, e.g. "squiggle"
	Queue   string // queue group name
}

// Worker serves pipeline requests on NATS subjects.
type Worker struct {
	nc     *nats.Conn
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(
		url,
		nats.Name("squiggle-worker"),
		nats.Timeout(NatsConnectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(NatsMaxReconnectAttempts),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to NATS at %s", url)
	}
	return nc, nil
}

// New creates a worker on an existing connection.
func New(nc *nats.Conn, runner *pipeline.Runner, logger *log.Logger, opts Options) *Worker {
	if logger == nil {
		logger = runner.Logger
	}
	if opts.Subject == "" {
		opts.Subject = "squiggle"
	}
	if opts.Queue == "" {
		opts.Queue = opts.Subject + "-workers"
	}
	return &Worker{nc: nc, runner: runner, logger: logger, opts: opts}
}

// Subject returns the full subject for a request kind.
func Subject(prefix, kind string) string {
	return prefix + "." + kind
}

// Run subscribes to every request subject and blocks until ctx is done,
// then drains the subscriptions.
func (w *Worker) Run(ctx context.Context) error {
	subs := make([]*nats.Subscription, 0, len(Kinds))
	for _, kind := range Kinds {
		subject := Subject(w.opts.Subject, kind)
		sub, err := w.nc.QueueSubscribe(subject, w.opts.Queue, func(msg *nats.Msg) {
			w.handleMsg(ctx, kind, msg)
		})
		if err != nil {
			for _, s := range subs {
				_ = s.Unsubscribe()
			}
			return errors.Wrap(errors.ErrCodeNetwork, err, "subscribe %s", subject)
		}
		subs = append(subs, sub)
		w.logger.Info("subscribed", "subject", subject, "queue", w.opts.Queue)
	}

	<-ctx.Done()
	w.logger.Info("context canceled, worker shutting down")
	for _, s := range subs {
		if err := s.Drain(); err != nil {
			w.logger.Warn("drain subscription", "subject", s.Subject, "error", err)
		}
	}
	return nil
}

func (w *Worker) handleMsg(ctx context.Context, kind string, msg *nats.Msg) {
	start := time.Now()
	id := ""
	if msg.Header != nil {
		id = msg.Header.Get(HeaderRequestID)
	}
	if id == "" {
		id = uuid.NewString()
	}

	body, err := w.Handle(ctx, kind, msg.Data)

	reply := nats.NewMsg(msg.Reply)
	reply.Header.Set(HeaderRequestID, id)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		reply.Header.Set(HeaderErrorCode, string(code))
		reply.Header.Set(HeaderError, errors.UserMessage(err))
		w.logger.Warn("request failed", "kind", kind, "request_id", id, "error", err)
	} else {
		reply.Data = body
		w.logger.Debug("request served", "kind", kind, "request_id", id, "bytes", len(body), "duration", time.Since(start))
	}

	if msg.Reply == "" {
		return
	}
	if err := msg.RespondMsg(reply); err != nil {
		w.logger.Error("respond", "kind", kind, "request_id", id, "error", err)
	}
}

// Handle resolves one request payload. It holds all request semantics and
// does not touch the connection.
func (w *Worker) Handle(ctx context.Context, kind string, payload []byte) ([]byte, error) {
	arg := string(bytes.TrimSpace(payload))
	switch kind {
	case KindSVG, KindMetadata:
		seed, err := errors.ParseSeed(arg)
		if err != nil {
			return nil, err
		}
		return w.runner.Artifact(ctx, seed, kind, pipeline.Options{})
	case KindToken:
		uri, err := w.runner.TokenURI(ctx, arg)
		if err != nil {
			return nil, err
		}
		return []byte(uri), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown request kind %q", kind)
	}
}

// =============================================================================
// Client
// =============================================================================

// Client sends requests to workers.
type Client struct {
	nc      *nats.Conn
	subject string
}

// NewClient creates a client using the given subject prefix.
func NewClient(nc *nats.Conn, subject string) *Client {
	if subject == "" {
		subject = "squiggle"
	}
	return &Client{nc: nc, subject: subject}
}

// Request sends payload to the kind subject and waits for the reply.
func (c *Client) Request(ctx context.Context, kind, payload string) ([]byte, error) {
	msg := nats.NewMsg(Subject(c.subject, kind))
	msg.Data = []byte(payload)
	msg.Header.Set(HeaderRequestID, uuid.NewString())

	reply, err := c.nc.RequestMsgWithContext(ctx, msg)
	if err != nil {
		if err == nats.ErrNoResponders {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "no worker listening on %s", msg.Subject)
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "request %s", msg.Subject)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "request %s", msg.Subject)
	}
	if err := ReplyError(reply); err != nil {
		return nil, err
	}
	return reply.Data, nil
}

// ReplyError converts error headers on a reply back into an *errors.Error.
func ReplyError(reply *nats.Msg) error {
	if reply.Header == nil {
		return nil
	}
	code := reply.Header.Get(HeaderErrorCode)
	if code == "" {
		return nil
	}
	return errors.New(errors.Code(code), "%s", reply.Header.Get(HeaderError))
}
