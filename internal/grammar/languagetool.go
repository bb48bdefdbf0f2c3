// Package grammar checks résumé text against a LanguageTool server.
package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxTextRunes = 20000

// ErrUnavailable wraps every failure to obtain a grammar report.
var ErrUnavailable = errors.New("grammar service unavailable")

type Issue struct {
	Message     string `json:"message"`
	Rule        string `json:"rule"`
	Category    string `json:"category"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Replacement string `json:"replacement,omitempty"`
}

type Options struct {
	URL           string
	Language      string
	Timeout       time.Duration
	RatePerMinute int
	MaxRetries    uint64
}

// LanguageTool is a client for the /v2/check endpoint. It is safe for
// concurrent use; calls are throttled by a shared token bucket.
type LanguageTool struct {
	url        string
	language   string
	timeout    time.Duration
	maxRetries uint64
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewLanguageTool(opts Options, log *zap.Logger) *LanguageTool {
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	limit := rate.Inf
	if opts.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RatePerMinute))
	}

	return &LanguageTool{
		url:        opts.URL,
		language:   opts.Language,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		limiter:    rate.NewLimiter(limit, 1),
		log:        log,
	}
}

type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID       string `json:"id"`
			Category struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check returns the issues LanguageTool reports for text. Transient failures
// are retried up to MaxRetries times with exponential backoff. The whole call,
// including the wait for the rate limiter, is bounded by the client timeout.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]Issue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, lt.timeout)
	defer cancel()
	if utf8.RuneCountInString(text) > maxTextRunes {
		text = string([]rune(text)[:maxTextRunes])
	}

	var issues []Issue
	operation := func() error {
		if err := lt.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		result, err := lt.check(text)
		if err != nil {
			lt.log.Debug("grammar check attempt failed", zap.Error(err))
			return err
		}
		issues = result
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, lt.maxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return issues, nil
}

func (lt *LanguageTool) check(text string) ([]Issue, error) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("text", text)
	args.Set("language", lt.language)

	agent := fiber.Post(lt.url).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Form(args).
		Timeout(lt.timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to call languagetool: %w", errors.Join(errs...))
	}

	switch {
	case code >= fiber.StatusInternalServerError || code == fiber.StatusTooManyRequests:
		return nil, fmt.Errorf("languagetool returned status %d", code)
	case code != fiber.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("languagetool returned status %d", code))
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode languagetool response: %w", err))
	}

	issues := make([]Issue, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		issue := Issue{
			Message:  m.Message,
			Rule:     m.Rule.ID,
			Category: m.Rule.Category.ID,
			Offset:   m.Offset,
			Length:   m.Length,
		}
		if len(m.Replacements) > 0 {
			issue.Replacement = m.Replacements[0].Value
		}
		issues = append(issues, issue)
	}

	return issues, nil
}
