package logger

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewELKLogger("dorium-contracts", Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	l.Info("contract uploaded", WithField("codeId", 7), WithField("name", "token"))
	l.Debug("this is a debug log test")
	l.Errorf("failed: %s", "boom")

	out := buf.String()
	assert.Contains(t, out, "contract uploaded")
	assert.Contains(t, out, "codeId=7")
	assert.Contains(t, out, "name=token")
	assert.Contains(t, out, "this is a debug log test")
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "app=dorium-contracts")
}

func TestLogging_Level(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewELKLogger("dorium-contracts", Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	l.SetLogLevel("verbose")
	l.Info("back to info")
	l.Debug("still hidden")
	assert.Contains(t, buf.String(), "back to info")
	assert.NotContains(t, buf.String(), "still hidden")
}

func TestLogging_LogstashUnreachable(t *testing.T) {
	_, err := NewELKLogger("dorium-contracts", Options{LogstashAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestLogging_LogstashClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	var buf bytes.Buffer
	l, err := NewELKLogger("dorium-contracts", Options{Output: &buf, LogstashAddr: ln.Addr().String()})
	require.NoError(t, err)
	server := <-accepted
	defer server.Close()

	l.Info("shipped", WithField("step", "transfer"))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
	l.Info("local only")

	require.NoError(t, server.SetReadDeadline(time.Now().Add(5*time.Second)))
	shipped, err := io.ReadAll(server)
	require.NoError(t, err)
	assert.Contains(t, string(shipped), `"message":"shipped"`)
	assert.NotContains(t, string(shipped), "local only")
	assert.Contains(t, buf.String(), "local only")
}

func TestMockLogger(t *testing.T) {
	l := NewMockLogger()
	l.Info("one")
	l.Warnf("two %d", 2)
	l.Info("three", WithField("k", "v"))

	assert.Equal(t, []string{"one", "three"}, l.Messages("info"))
	assert.Equal(t, []string{"two 2"}, l.Messages("warn"))
	assert.Equal(t, []Field{{Key: "k", Val: "v"}}, l.Entries()[2].Fields)
}

func TestReplaceZapGlobals(t *testing.T) {
	restore, err := ReplaceZapGlobals("debug")
	require.NoError(t, err)
	defer restore()

	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
}
