package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/sourcetag/internal/attribution"
	"github.com/JaimeStill/sourcetag/pkg/webhook"
)

type tagger struct {
	updater    Updater
	verifier   *webhook.Verifier
	classifier *attribution.Classifier
	opts       Options
	maxBody    int64
	logger     *slog.Logger
}

// New creates an order tagging system implementing the System interface.
// maxBody caps webhook request bodies; zero or less disables the cap.
func New(
	updater Updater,
	verifier *webhook.Verifier,
	opts Options,
	maxBody int64,
	logger *slog.Logger,
) System {
	return &tagger{
		updater:    updater,
		verifier:   verifier,
		classifier: attribution.NewClassifier(opts.Classifier),
		opts:       opts,
		maxBody:    maxBody,
		logger:     logger.With("system", "orders"),
	}
}

func (t *tagger) Handler() *Handler {
	return NewHandler(t, t.verifier, t.maxBody, t.logger)
}

func (t *tagger) Plan(order attribution.Order) Plan {
	verdict := t.classifier.Classify(order)
	tag := attribution.TagFor(verdict, t.opts.Style)
	current := attribution.NormalizeTags(order.Tags)

	plan := Plan{
		Order:   order,
		Verdict: verdict,
		Tag:     tag,
		Tags:    current,
	}

	if !verdict.Paid() && !t.opts.TagOrganic {
		return plan
	}

	plan.Tags = attribution.MergeTag(order.Tags, tag)
	plan.Update = !t.opts.SkipUnchanged || plan.Tags != current

	return plan
}

func (t *tagger) Tag(ctx context.Context, order attribution.Order) (*Result, error) {
	plan := t.Plan(order)
	id := order.ID.String()

	if plan.Update {
		if err := t.updater.UpdateOrderTags(ctx, id, plan.Tags); err != nil {
			return nil, fmt.Errorf("%w: order %s: %w", ErrUpstream, id, err)
		}
	}

	t.logger.Info("order classified",
		"order_id", id,
		"source", plan.Verdict.Source,
		"platform", plan.Verdict.Platform,
		"tag", plan.Tag,
		"updated", plan.Update,
	)

	return t.result(plan), nil
}

func (t *tagger) result(plan Plan) *Result {
	r := &Result{
		Success:       true,
		OrderID:       plan.Order.ID.String(),
		TrafficSource: plan.Verdict.Source,
		Tag:           plan.Tag,
		Tags:          plan.Tags,
		Updated:       plan.Update,
	}

	if plan.Verdict.Platform != "" {
		platform := plan.Verdict.Platform
		r.Platform = &platform
	}

	if t.opts.IncludeEvidence {
		r.Evidence = plan.Verdict.Evidence
	}

	return r
}
