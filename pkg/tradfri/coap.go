package tradfri

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	piondtls "github.com/pion/dtls/v2"
	"github.com/plgd-dev/go-coap/v3/dtls"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	coapclient "github.com/plgd-dev/go-coap/v3/udp/client"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// GatewayClient talks CoAP over DTLS-PSK to a Tradfri gateway. All requests
// share one session; the session is redialled transparently after transport
// failures.
type GatewayClient struct {
	addr     string
	identity string
	psk      string
	timeout  time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	conn *coapclient.Conn
}

// errCoapNotFound marks a 4.04 response so callers can map it onto the
// device/group taxonomy.
var errCoapNotFound = errors.New("not found on gateway")

func isCoapNotFound(err error) bool {
	return errors.Is(err, errCoapNotFound)
}

// gatewayErr tags a transport failure with the gateway sentinel while keeping
// the underlying cause in the chain for the logs.
func gatewayErr(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w: %w", append(args, kerrors.ErrGateway, err)...)
}

func pskConfig(identity, key string) *piondtls.Config {
	return &piondtls.Config{
		PSK: func(hint []byte) ([]byte, error) {
			return []byte(key), nil
		},
		PSKIdentityHint: []byte(identity),
		CipherSuites:    []piondtls.CipherSuiteID{piondtls.TLS_PSK_WITH_AES_128_CCM_8},
	}
}

func (c *GatewayClient) connect() (*coapclient.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn, err := dtls.Dial(c.addr, pskConfig(c.identity, c.psk))
	if err != nil {
		return nil, gatewayErr(err, "dialling %s", c.addr)
	}
	c.logger.Debug("gateway session established", "addr", c.addr)
	c.conn = conn
	return conn, nil
}

// drop discards the current session so the next request redials.
func (c *GatewayClient) drop(conn *coapclient.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		c.conn = nil
	}
	conn.Close()
}

// Close tears down the gateway session, if any.
func (c *GatewayClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *GatewayClient) get(ctx context.Context, path string) ([]byte, error) {
	conn, err := c.connect()
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := conn.Get(reqCtx, path)
	if err != nil {
		c.drop(conn)
		return nil, gatewayErr(err, "GET %s", path)
	}
	switch resp.Code() {
	case codes.Content:
	case codes.NotFound:
		return nil, fmt.Errorf("GET %s: %w", path, errCoapNotFound)
	default:
		return nil, kerrors.Gatewayf("GET %s returned %v", path, resp.Code())
	}

	body, err := resp.ReadBody()
	if err != nil {
		return nil, gatewayErr(err, "reading GET %s response", path)
	}
	return body, nil
}

func (c *GatewayClient) put(ctx context.Context, path string, payload []byte) error {
	conn, err := c.connect()
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := conn.Put(reqCtx, path, message.AppJSON, bytes.NewReader(payload))
	if err != nil {
		c.drop(conn)
		return gatewayErr(err, "PUT %s", path)
	}
	switch resp.Code() {
	case codes.Changed, codes.Content:
		return nil
	case codes.NotFound:
		return fmt.Errorf("PUT %s: %w", path, errCoapNotFound)
	default:
		return kerrors.Gatewayf("PUT %s returned %v", path, resp.Code())
	}
}
