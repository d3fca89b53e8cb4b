package interaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/interact/internal/core/domain"
	"github.com/vietddude/interact/internal/infra/platform"
	"github.com/vietddude/interact/internal/infra/storage"
	"github.com/vietddude/interact/internal/interaction/metrics"
)

// Executor exposes the interaction operations. Each call performs exactly one
// platform attempt; retry policy belongs to the caller.
type Executor struct {
	store      storage.AccountRepository
	factory    platform.Factory
	resolver   *Resolver
	classifier *Classifier
	log        *slog.Logger
}

// NewExecutor creates an executor over the given pool and client factory.
func NewExecutor(store storage.AccountRepository, factory platform.Factory, classifier *Classifier, log *slog.Logger) *Executor {
	if classifier == nil {
		classifier = NewClassifier()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		store:      store,
		factory:    factory,
		resolver:   NewResolver(store),
		classifier: classifier,
		log:        log,
	}
}

// CreatePost publishes a new post, optionally with attached media.
func (e *Executor) CreatePost(ctx context.Context, text string, mediaIDs []string, username string) (*platform.Post, error) {
	return run(e, ctx, domain.OpCreatePost, username, func(c platform.Client) (*platform.Post, error) {
		return c.CreatePost(ctx, text, mediaIDs)
	})
}

// ReplyToPost publishes a reply. Replies are posts, so they run on the
// CreatePost queue.
func (e *Executor) ReplyToPost(ctx context.Context, postID, text string, mediaIDs []string, username string) (*platform.Post, error) {
	return run(e, ctx, domain.OpCreatePost, username, func(c platform.Client) (*platform.Post, error) {
		return c.ReplyToPost(ctx, postID, text, mediaIDs)
	})
}

// Reshare reshares a post. A non-blank quoteText turns it into a quote post,
// which runs on the CreatePost queue instead of Reshare.
func (e *Executor) Reshare(ctx context.Context, postID, quoteText string, mediaIDs []string, username string) (*platform.Post, error) {
	if strings.TrimSpace(quoteText) != "" {
		return run(e, ctx, domain.OpCreatePost, username, func(c platform.Client) (*platform.Post, error) {
			return c.QuotePost(ctx, postID, quoteText, mediaIDs)
		})
	}
	return run(e, ctx, domain.OpReshare, username, func(c platform.Client) (*platform.Post, error) {
		return c.Reshare(ctx, postID)
	})
}

// Follow follows the target user.
func (e *Executor) Follow(ctx context.Context, userID string, username string) (*platform.User, error) {
	return run(e, ctx, domain.OpCreateFriendship, username, func(c platform.Client) (*platform.User, error) {
		return c.Follow(ctx, userID)
	})
}

// UpdateProfile updates the acting account's profile fields.
func (e *Executor) UpdateProfile(ctx context.Context, update platform.ProfileUpdate, username string) (*platform.User, error) {
	return run(e, ctx, domain.OpUpdateProfile, username, func(c platform.Client) (*platform.User, error) {
		return c.UpdateProfile(ctx, update)
	})
}

// run is the shared shape of every operation: resolve, build, call once,
// classify on failure, always surface the original error.
func run[T any](e *Executor, ctx context.Context, op domain.Operation, username string, call func(platform.Client) (T, error)) (T, error) {
	var zero T

	account, err := e.resolver.Resolve(ctx, op, username)
	if err != nil {
		metrics.EligibleLookupFailures.WithLabelValues(string(op)).Inc()
		return zero, err
	}

	client, err := e.factory.Build(account)
	if err != nil {
		return zero, err
	}

	requestID := uuid.NewString()
	e.log.Debug("platform call",
		"request_id", requestID,
		"operation", string(op),
		"account", account.Username,
		"proxy", account.Proxy)

	start := time.Now()
	result, err := call(client)
	metrics.CallLatency.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CallsTotal.WithLabelValues(string(op), "error").Inc()
		e.handleFailure(ctx, err, account.Username, op, requestID)
		return zero, err
	}

	metrics.CallsTotal.WithLabelValues(string(op), "ok").Inc()
	return result, nil
}

// handleFailure classifies the error and applies the decision. A mutation
// failure is logged, never raised: the caller gets the original error.
func (e *Executor) handleFailure(ctx context.Context, err error, username string, op domain.Operation, requestID string) {
	kind := platform.KindOf(err)
	metrics.PlatformErrorsTotal.WithLabelValues(string(op), kind.String()).Inc()

	decision := e.classifier.Classify(err, username, op)
	if decision.Action == domain.ActionNone {
		e.log.Error("unrecognized platform error",
			"request_id", requestID,
			"account", username,
			"operation", string(op),
			"error", err)
		return
	}

	e.log.Warn("platform error classified",
		"request_id", requestID,
		"account", username,
		"operation", string(op),
		"kind", kind.String(),
		"action", decision.Action.String(),
		"reason", decision.Reason,
		"error", err)

	if applyErr := e.apply(ctx, decision); applyErr != nil {
		e.log.Error("failed to apply decision",
			"request_id", requestID,
			"account", username,
			"action", decision.Action.String(),
			"error", applyErr)
		return
	}
	metrics.AccountMutationsTotal.WithLabelValues(decision.Action.String()).Inc()
}

func (e *Executor) apply(ctx context.Context, d domain.Decision) error {
	switch d.Action {
	case domain.ActionSuspendQueue:
		return e.store.SuspendQueue(ctx, d.Username, d.Queue, d.Duration, d.Reason)
	case domain.ActionBan:
		return e.store.Ban(ctx, d.Username, d.Reason)
	case domain.ActionRotateProxy:
		return e.store.RotateProxy(ctx, d.Username)
	default:
		return nil
	}
}
