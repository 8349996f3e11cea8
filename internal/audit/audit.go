// Package audit records every observed business operation, success or
// failure, to an append-only trail. The trail is fire-and-forget: a
// failed write is logged and never surfaces to the wrapped call.
package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/arthurmdp/bankledger/internal/config"
	"github.com/arthurmdp/bankledger/pkg/logger"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Auditor writes one record per observed call.
type Auditor struct {
	mu     sync.Mutex
	sink   io.Writer
	logger logger.Logger
	now    func() time.Time
}

// New creates an auditor writing to the given sink.
func New(sink io.Writer, logger logger.Logger) *Auditor {
	return &Auditor{sink: sink, logger: logger, now: time.Now}
}

// NewFromConfig creates an auditor backed by a rotated append-only file.
func NewFromConfig(cfg *config.Config, logger logger.Logger) *Auditor {
	return New(&lumberjack.Logger{
		Filename:   cfg.Audit.Path,
		MaxSize:    cfg.Audit.MaxSizeMB,
		MaxBackups: cfg.Audit.MaxBackups,
	}, logger)
}

// Record writes one audit entry with the operation name, its full
// argument list, the returned value and the returned error.
func (a *Auditor) Record(op string, args []any, result any, err error) {
	outcome := "ok"
	if err != nil {
		outcome = err.Error()
	}

	line := fmt.Sprintf("id=%s ts=%s op=%s args=[%s] result=%v err=%q\n",
		uuid.NewString(),
		a.now().Format(time.RFC3339),
		op,
		formatArgs(args),
		result,
		outcome,
	)

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, werr := io.WriteString(a.sink, line); werr != nil {
		a.logger.Errorf("audit write: %s", werr)
	}
}

// Observe invokes fn and records its outcome. The result and error of
// fn pass through unaltered, so wrapping a call never changes its
// behavior.
func Observe[T any](a *Auditor, op string, args []any, fn func() (T, error)) (T, error) {
	v, err := fn()
	a.Record(op, args, v, err)
	return v, err
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%v", arg)
	}
	return strings.Join(parts, " ")
}
