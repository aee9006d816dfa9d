package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/toolcall"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding every session's records.
	StreamName = "toolstatus_invocations"

	subjectRoot    = "toolstatus"
	defaultSession = "default"
	fetchBatch     = 1000
)

// SessionToken turns a session name into a single subject token.
func SessionToken(session string) string {
	tok := slug.Make(session)
	if tok == "" {
		return defaultSession
	}
	return tok
}

// SubjectForSession returns the subject records of a session are published on.
// Example: "toolstatus.my-session.invocations"
func SubjectForSession(session string) string {
	return fmt.Sprintf("%s.%s.invocations", subjectRoot, SessionToken(session))
}

// SetupStream creates or updates the invocation stream.
// Subject pattern toolstatus.> matches every session.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{subjectRoot + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up stream %s: %w", StreamName, err)
	}
	return stream, nil
}

// Store publishes and replays invocation records on JetStream.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore sets up the stream and returns a store bound to it.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	stream, err := SetupStream(ctx, js)
	if err != nil {
		return nil, err
	}
	return &Store{js: js, stream: stream}, nil
}

// Publish appends inv to the session's record log. An invocation without an
// ID is given a random one; the stored invocation is returned.
func (s *Store) Publish(ctx context.Context, session string, inv toolcall.Invocation) (toolcall.Invocation, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	data, err := toolcall.MarshalRecord(inv)
	if err != nil {
		return inv, err
	}

	subject := SubjectForSession(session)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish record to subject %s: %v", subject, err)
		return inv, fmt.Errorf("publishing record %s: %w", inv.ID, err)
	}

	logger.Debug("Record published: id=%s seq=%d", inv.ID, ack.Sequence)
	return inv, nil
}

// Load reads every record stored for session, oldest first. Malformed
// records are skipped.
func (s *Store) Load(ctx context.Context, session string) ([]toolcall.Invocation, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: SubjectForSession(session),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	var out []toolcall.Invocation
	for {
		msgs, err := consumer.FetchNoWait(fetchBatch)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			if inv, ok := decodeMsg(msg); ok {
				out = append(out, inv)
			}
			_ = msg.Ack()
		}
		if err := msgs.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
			return out, fmt.Errorf("fetching records: %w", err)
		}
		if count == 0 {
			break
		}
	}

	logger.Debug("Loaded %d records for session %s", len(out), session)
	return out, nil
}

// Watch delivers every stored record of session, then new ones as they are
// published, until ctx is cancelled. out is closed when Watch returns.
func (s *Store) Watch(ctx context.Context, session string, out chan<- toolcall.Invocation) error {
	defer close(out)

	consumer, err := s.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{SubjectForSession(session)},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return fmt.Errorf("creating ordered consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		inv, ok := decodeMsg(msg)
		if !ok {
			return
		}
		select {
		case out <- inv:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("consuming records: %w", err)
	}

	<-ctx.Done()
	cc.Stop()
	<-cc.Closed()
	return nil
}

func decodeMsg(msg jetstream.Msg) (toolcall.Invocation, bool) {
	inv, err := toolcall.UnmarshalRecord(msg.Data())
	if err != nil {
		seq := uint64(0)
		if meta, merr := msg.Metadata(); merr == nil {
			seq = meta.Sequence.Stream
		}
		logger.Warn("Skipping malformed record (seq=%d): %v", seq, err)
		return toolcall.Invocation{}, false
	}
	return inv, true
}
