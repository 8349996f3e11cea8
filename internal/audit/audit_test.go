package audit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arthurmdp/bankledger/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditor() (*Auditor, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	a := New(buf, logger.NewNop())
	a.now = func() time.Time {
		return time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	}
	return a, buf
}

func TestRecord(t *testing.T) {
	t.Run("successful call", func(t *testing.T) {
		a, buf := newTestAuditor()

		a.Record("deposit", []any{"12345678901", "100.00"}, "1100.00", nil)

		line := buf.String()
		assert.Contains(t, line, "op=deposit")
		assert.Contains(t, line, "args=[12345678901 100.00]")
		assert.Contains(t, line, "result=1100.00")
		assert.Contains(t, line, `err="ok"`)
		assert.Contains(t, line, "ts=2024-03-10T15:04:05Z")
		assert.True(t, strings.HasSuffix(line, "\n"))
	})

	t.Run("failed call is recorded too", func(t *testing.T) {
		a, buf := newTestAuditor()

		a.Record("withdraw", []any{"12345678901", "900.00"}, nil, errors.New("insufficient balance"))

		assert.Contains(t, buf.String(), `err="insufficient balance"`)
	})

	t.Run("one line per call", func(t *testing.T) {
		a, buf := newTestAuditor()

		a.Record("deposit", nil, nil, nil)
		a.Record("withdraw", nil, nil, nil)
		a.Record("register_customer", nil, nil, nil)

		assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
	})

	t.Run("records carry unique ids", func(t *testing.T) {
		a, buf := newTestAuditor()

		a.Record("deposit", nil, nil, nil)
		a.Record("deposit", nil, nil, nil)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		id := func(line string) string { return strings.Fields(line)[0] }
		assert.NotEqual(t, id(lines[0]), id(lines[1]))
	})
}

func TestObserve(t *testing.T) {
	t.Run("result passes through unaltered", func(t *testing.T) {
		a, buf := newTestAuditor()

		got, err := Observe(a, "deposit", []any{"doc"}, func() (int, error) {
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Contains(t, buf.String(), "result=42")
	})

	t.Run("error passes through unaltered", func(t *testing.T) {
		a, buf := newTestAuditor()
		boom := errors.New("boom")

		_, err := Observe(a, "withdraw", nil, func() (int, error) {
			return 0, boom
		})

		require.ErrorIs(t, err, boom)
		assert.Contains(t, buf.String(), `err="boom"`)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecord_SinkFailureIsSwallowed(t *testing.T) {
	a := New(failingWriter{}, logger.NewNop())

	got, err := Observe(a, "deposit", nil, func() (string, error) {
		return "done", nil
	})

	// The wrapped call is unaffected by the sink failure.
	require.NoError(t, err)
	assert.Equal(t, "done", got)
}
