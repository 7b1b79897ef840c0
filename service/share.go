package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"tradeline-calculator/metrics"
)

// Sharer hands a piece of text to a platform share mechanism.
// Implementations return ErrShareUnavailable when the mechanism is missing.
type Sharer interface {
	Share(ctx context.Context, text string) error
}

// ShareText is the sentence offered for sharing a result.
func ShareText(additionalCredit, target float64) string {
	return fmt.Sprintf("I need an AU tradeline with %s credit limit to reach %s%% utilization!",
		FormatCurrency(additionalCredit), FormatTarget(target))
}

// ShareService delivers share text through the primary sharer, or the
// fallback (the clipboard, in the original form) when the primary is absent
// or unavailable. With neither configured the text is only returned.
type ShareService struct {
	primary  Sharer
	fallback Sharer
}

func NewShareService(primary, fallback Sharer) *ShareService {
	return &ShareService{primary: primary, fallback: fallback}
}

func (s *ShareService) Share(ctx context.Context, ev Evaluation) (string, error) {
	if !ev.actionable() {
		return "", ErrNothingToShare
	}
	text := ShareText(ev.Result.AdditionalCreditNeeded, ev.Target)

	if s.primary == nil && s.fallback == nil {
		metrics.IncreaseSharesTotalMetric("client")
		return text, nil
	}

	if s.primary != nil {
		err := s.primary.Share(ctx, text)
		if err == nil {
			metrics.IncreaseSharesTotalMetric("primary")
			return text, nil
		}
		if !errors.Is(err, ErrShareUnavailable) {
			return "", err
		}
		zap.S().Named("share_service").Debugw("primary share unavailable, using fallback")
	}

	if s.fallback == nil {
		return "", ErrShareUnavailable
	}
	if err := s.fallback.Share(ctx, text); err != nil {
		return "", err
	}
	metrics.IncreaseSharesTotalMetric("fallback")
	return text, nil
}

// WriterSharer writes the text as one line to w.
type WriterSharer struct {
	W io.Writer
}

func (s WriterSharer) Share(_ context.Context, text string) error {
	if s.W == nil {
		return ErrShareUnavailable
	}
	_, err := fmt.Fprintln(s.W, text)
	return err
}
