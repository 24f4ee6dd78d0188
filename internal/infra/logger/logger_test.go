package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Spok95/furniture-db/internal/infra/logger"
)

func TestLevelByEnv(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	logger.NewWriter(&buf, "prod").Debug("hidden")
	c.Assert(buf.Len(), qt.Equals, 0)

	logger.NewWriter(&buf, "dev").Debug("shown", "op", "list_products")
	var rec map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &rec), qt.IsNil)
	c.Assert(rec["msg"], qt.Equals, "shown")
	c.Assert(rec["op"], qt.Equals, "list_products")
}

func TestFromContextAddsRequestID(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	base := logger.NewWriter(&buf, "prod")
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	logger.FromContext(ctx, base).Info("hello")
	var rec map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &rec), qt.IsNil)
	c.Assert(rec["request_id"], qt.Equals, "req-42")
}
