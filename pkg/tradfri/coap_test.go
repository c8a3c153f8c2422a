package tradfri

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
)

func TestGatewayErrKeepsCause(t *testing.T) {
	cause := errors.New("dtls: connection timed out")
	err := gatewayErr(cause, "GET %s", epDevices)

	assert.True(t, kerrors.IsGateway(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), epDevices)
	assert.Contains(t, err.Error(), "connection timed out")
}

func TestIsCoapNotFound(t *testing.T) {
	assert.True(t, isCoapNotFound(errCoapNotFound))
	assert.True(t, isCoapNotFound(gatewayErr(errCoapNotFound, "GET %s", epGroups)))
	assert.False(t, isCoapNotFound(errors.New("something else")))
}
