package resilience

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"econnreset", errors.New("read tcp: ECONNRESET"), true},
		{"connection reset by peer", errors.New("read: connection reset by peer"), true},
		{"host not found", errors.New("getaddrinfo ENOTFOUND db.internal"), true},
		{"dns lookup", errors.New("dial tcp: lookup db: no such host"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"etimedout", errors.New("connect ETIMEDOUT 10.0.0.1:5432"), true},
		{"connection terminated", errors.New("Connection terminated unexpectedly"), true},
		{"connection lost", errors.New("Connection lost: server closed"), true},
		{"wrapped transient", fmt.Errorf("querying songs: %w", errors.New("connection reset")), true},
		{"syntax error", errors.New(`syntax error at or near "FROM"`), false},
		{"constraint", errors.New("duplicate key value violates unique constraint"), false},
	}

	c := NewMessageClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestMessageClassifier_CustomMarkers(t *testing.T) {
	c := NewMessageClassifier("Too Many Clients")

	assert.True(t, c.IsTransient(errors.New("FATAL: too many clients already")))
	assert.False(t, c.IsTransient(errors.New("connection reset")))
}

func TestClassifierFunc(t *testing.T) {
	var c Classifier = ClassifierFunc(func(err error) bool { return err != nil })

	assert.True(t, c.IsTransient(errors.New("anything")))
	assert.False(t, c.IsTransient(nil))
}
