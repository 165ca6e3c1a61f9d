package server

import (
	"net"
	"time"

	"github.com/adsmood/ctv-vast-engine/metrics"
)

type monitorableListener struct {
	*net.TCPListener
	metrics metrics.Engine
}

type monitorableConnection struct {
	net.Conn
	metrics metrics.Engine
}

func (ln *monitorableListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}

	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	ln.metrics.RecordNewConnection()
	return &monitorableConnection{
		tc,
		ln.metrics,
	}, nil
}

func (c *monitorableConnection) Close() error {
	c.metrics.RecordClosedConnection()
	return c.Conn.Close()
}
