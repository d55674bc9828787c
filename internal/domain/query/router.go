// Package query routes free-text questions to the service capability
// that can answer them.
package query

import (
	"context"
	"strings"
)

// Default number of picks for a recommendation answer.
const defaultTopK = 5

// Responder is the capability surface the router dispatches into.
type Responder interface {
	// RecommendText answers "recommend a batsman/bowler" style queries.
	RecommendText(ctx context.Context, roleHint string, topK int) string

	// LeaderboardText renders the historical-average leaderboard.
	LeaderboardText(ctx context.Context) string

	// LiveScoreText returns the live score summary or a degradation message.
	LiveScoreText(ctx context.Context) string
}

// rule pairs a predicate with its response. Rules are evaluated in order;
// the first match wins.
type rule struct {
	match   func(q string) bool
	respond func(ctx context.Context, q string) string
}

// Router maps free-text input to canned or computed responses.
type Router struct {
	rules []rule
}

// FAQ responses keyed by substring, checked before dynamic rules.
var faqs = []struct {
	key    string
	answer string
}{
	{"how does scoring work", "Batting: 1 pt per run, +1 for 4s, +2 for 6s. Bowling: 25 pts per wicket. Fielding: 8-12 pts depending on type."},
	{"scoring", "Batting: 1 pt per run, +1 for 4s, +2 for 6s. Bowling: 25 pts per wicket. Fielding: 8-12 pts."},
	{"who made this", "This bot was built on historical CricSheet match data and a regression model."},
	{"help", "Try asking things like 'Recommend a batsman', 'Live scores', or 'How does scoring work'."},
}

const defaultAnswer = "Try asking something like 'Recommend a batsman' or 'Show live score'."

// NewRouter builds the ordered rule table over the given responder.
func NewRouter(r Responder) *Router {
	var rules []rule

	// FAQs first so "how does scoring work" is not mistaken for a
	// live-score request.
	for _, f := range faqs {
		f := f
		rules = append(rules, rule{
			match:   containsAny(f.key),
			respond: func(context.Context, string) string { return f.answer },
		})
	}

	rules = append(rules,
		rule{
			match: containsAny("recommend", "pick"),
			respond: func(ctx context.Context, q string) string {
				return r.RecommendText(ctx, roleHint(q), defaultTopK)
			},
		},
		rule{
			match: containsAny("live", "score"),
			respond: func(ctx context.Context, _ string) string {
				return r.LiveScoreText(ctx)
			},
		},
		rule{
			match: containsAny("leaderboard", "top players"),
			respond: func(ctx context.Context, _ string) string {
				return r.LeaderboardText(ctx)
			},
		},
	)

	return &Router{rules: rules}
}

// Answer routes one free-text query. Unrecognized input gets the help
// message, never an error.
func (r *Router) Answer(ctx context.Context, q string) string {
	lowered := strings.ToLower(strings.TrimSpace(q))
	for _, rule := range r.rules {
		if rule.match(lowered) {
			return rule.respond(ctx, lowered)
		}
	}
	return defaultAnswer
}

func containsAny(keys ...string) func(string) bool {
	return func(q string) bool {
		for _, k := range keys {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}

// roleHint extracts a role keyword from the query text: "bat" covers
// batsman/batter/batting, "bowl" covers bowler/bowling.
func roleHint(q string) string {
	switch {
	case strings.Contains(q, "bat"):
		return "batsman"
	case strings.Contains(q, "bowl"):
		return "bowler"
	default:
		return ""
	}
}
