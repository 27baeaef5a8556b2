package main

import (
	"bufio"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/infrastructure/realtime"
)

func TestShutdownEndsOpenActivityStreams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := realtime.NewActivityHub()
	router := gin.New()
	router.GET("/activity/stream", func(c *gin.Context) { c.Set("user_id", "alice") }, hub.Serve)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	httpServer := newHTTPServer(ln.Addr().String(), router, hub)
	served := make(chan error, 1)
	go func() { served <- httpServer.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/activity/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, ":ok"))

	start := time.Now()
	assert.NoError(t, shutdownServer(httpServer, 3*time.Second))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
}

func TestShutdownTimeoutIsNotAnError(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-block
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	httpServer := newHTTPServer(ln.Addr().String(), handler, realtime.NewActivityHub())
	go func() { _ = httpServer.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NoError(t, shutdownServer(httpServer, 50*time.Millisecond))
}
