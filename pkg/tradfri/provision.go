package tradfri

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plgd-dev/go-coap/v3/dtls"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

// factoryIdentity is the well-known DTLS identity accepted by the gateway
// during provisioning, together with the security code printed on its back.
const factoryIdentity = "Client_identity"

type authRequest struct {
	Identity string `json:"9090"`
}

type authResponse struct {
	PSK      string `json:"9091"`
	Firmware string `json:"9029"`
}

// ProvisionPSK exchanges the gateway security code for a per-client PSK.
// The generated identity and the returned PSK must be persisted and reused;
// the security code itself is only valid for this exchange.
func ProvisionPSK(ctx context.Context, addr, securityCode string, logger *slog.Logger) (identity, psk string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	if securityCode == "" {
		return "", "", kerrors.InvalidInputf("gateway security code is required for provisioning")
	}

	identity = strings.ReplaceAll(uuid.New().String(), "-", "")

	conn, err := dtls.Dial(addr, pskConfig(factoryIdentity, securityCode))
	if err != nil {
		return "", "", gatewayErr(err, "dialling %s for provisioning", addr)
	}
	defer conn.Close()

	payload, err := json.Marshal(authRequest{Identity: identity})
	if err != nil {
		return "", "", kerrors.Gatewayf("encoding provisioning request")
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := conn.Post(reqCtx, epGatewayAuth, message.AppJSON, bytes.NewReader(payload))
	if err != nil {
		return "", "", gatewayErr(err, "POST %s", epGatewayAuth)
	}
	if resp.Code() != codes.Created {
		return "", "", kerrors.Gatewayf("provisioning returned %v", resp.Code())
	}

	body, err := resp.ReadBody()
	if err != nil {
		return "", "", gatewayErr(err, "reading provisioning response")
	}
	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", "", kerrors.Gatewayf("decoding provisioning response")
	}
	if auth.PSK == "" {
		return "", "", kerrors.Gatewayf("gateway returned an empty PSK")
	}

	logger.Info("provisioned new gateway credentials", "addr", addr, "identity", identity, "firmware", auth.Firmware)
	return identity, auth.PSK, nil
}
