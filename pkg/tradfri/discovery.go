package tradfri

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

const (
	serviceName = "_coap._udp"
	domain      = "local."
)

// Tradfri gateways announce themselves as "gw-<mac>" or "gw:<mac>".
func isGatewayInstance(instance string) bool {
	return strings.HasPrefix(strings.ToLower(instance), "gw")
}

// DiscoverGateway browses mDNS for a Tradfri gateway and returns its
// host:port address. Used when no gateway address is configured.
func DiscoverGateway(ctx context.Context, timeout time.Duration, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, 8)
	if err := resolver.Browse(browseCtx, serviceName, domain, entries); err != nil {
		return "", fmt.Errorf("failed to browse for %s: %w", serviceName, err)
	}

	for {
		select {
		case <-browseCtx.Done():
			return "", kerrors.Gatewayf("no gateway found via mDNS within %s", timeout)
		case entry, ok := <-entries:
			if !ok {
				return "", kerrors.Gatewayf("no gateway found via mDNS within %s", timeout)
			}
			if entry == nil || len(entry.AddrIPv4) == 0 || entry.Port == 0 {
				continue
			}
			if !isGatewayInstance(entry.Instance) {
				logger.Debug("ignoring non-gateway CoAP service", "instance", entry.Instance)
				continue
			}
			addr := fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port)
			logger.Info("discovered gateway", "instance", entry.Instance, "addr", addr)
			return addr, nil
		}
	}
}
