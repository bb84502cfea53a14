package fastboot

import (
	"testing"

	"github.com/keembay/fastboot/pkg/transport"
	"github.com/keembay/fastboot/pkg/transport/virtual"
	"github.com/stretchr/testify/require"
)

// newTestSession builds a Session over a fresh virtual.Pipe with sane
// defaults, which mutate (if non-nil) may change before New is called.
func newTestSession(t *testing.T, kind transport.Kind, mutate func(*Configuration)) (*Session, *virtual.Pipe) {
	t.Helper()

	pipe, err := virtual.New("")
	require.NoError(t, err)
	vp := pipe.(*virtual.Pipe)

	cfg := Configuration{
		Transport:       kind,
		Pipe:            pipe,
		Product:         "Intel Movidius Keembay 3xxx",
		SerialNumber:    []byte{0xDE, 0xAD, 0xBE, 0xEF},
		StageBuffer:     make([]byte, 4096),
		MaxDownloadSize: 8388608,
		BootStage:       BL2,
		Debug:           true,
		Secure:          true,
		Recovery:        false,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	return s, vp
}
