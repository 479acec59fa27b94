// Package resilience classifies store failures, retries transient ones and
// keeps the process alive when background or handler code faults.
package resilience

import "strings"

// Classifier decides whether a failure is transient connectivity trouble.
type Classifier interface {
	IsTransient(err error) bool
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(err error) bool

// IsTransient calls f(err).
func (f ClassifierFunc) IsTransient(err error) bool {
	return f(err)
}

// DefaultTransientMarkers are lowercase message fragments of recoverable
// connectivity failures: connection reset, host not found, timeout,
// connection terminated and connection lost.
var DefaultTransientMarkers = []string{
	"econnreset",
	"connection reset",
	"enotfound",
	"no such host",
	"etimedout",
	"timeout",
	"connection terminated",
	"connection lost",
}

// MessageClassifier matches error messages against known markers.
type MessageClassifier struct {
	markers []string
}

// NewMessageClassifier creates a classifier for the given markers.
// DefaultTransientMarkers are used when none are given.
func NewMessageClassifier(markers ...string) *MessageClassifier {
	if len(markers) == 0 {
		markers = DefaultTransientMarkers
	}
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return &MessageClassifier{markers: lowered}
}

// IsTransient reports whether err's message contains any marker.
func (c *MessageClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range c.markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

var _ Classifier = (*MessageClassifier)(nil)
