package fastboot

import (
	"testing"

	"github.com/keembay/fastboot/pkg/transport"
	"github.com/stretchr/testify/require"
)

func TestDispatchErase(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("erase:system")))
	require.Equal(t, "FAILNot supported", string(vp.Sent))
}

func TestDispatchBoot(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("boot")))
	require.Equal(t, "FAILNot supported", string(vp.Sent))
}

func TestDispatchFlashBoot(t *testing.T) {
	writer := &RecordingPartitionWriter{}
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.PartitionWriter = writer
	})
	require.NoError(t, s.dispatch([]byte("download:00000002")))
	require.NoError(t, s.dispatch([]byte{0x01, 0x02}))
	vp.Sent = nil

	require.NoError(t, s.dispatch([]byte("flash:boot")))
	require.Equal(t, "OKAY", string(vp.Sent))
	require.Equal(t, "boot", writer.Partition)
	require.Equal(t, []byte{0x01, 0x02}, writer.Data)
}

func TestDispatchFlashSystem(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("flash:system")))
	require.Equal(t, "FAILnot implemented", string(vp.Sent))
}

func TestDispatchFlashUnknownPartition(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("flash:vendor")))
	require.Equal(t, "FAILunknown partition", string(vp.Sent))
}

func TestDispatchContinue(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("continue")))
	require.Equal(t, "OKAY", string(vp.Sent))
	require.True(t, s.continueFlag)
}

func TestDispatchRebootBL1Refused(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.BootStage = BL1
	})
	require.NoError(t, s.dispatch([]byte("reboot")))
	require.Equal(t, "FAILNot supported", string(vp.Sent))
}

func TestDispatchReboot(t *testing.T) {
	wdt := &NoopWatchdog{}
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.Watchdog = wdt
	})
	require.NoError(t, s.dispatch([]byte("reboot")))
	require.Equal(t, "OKAY", string(vp.Sent))
	require.Equal(t, 1, wdt.Resets)
}

func TestDispatchRebootBootloaderEmitsInfo(t *testing.T) {
	wdt := &NoopWatchdog{}
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.Watchdog = wdt
	})
	require.NoError(t, s.dispatch([]byte("reboot-bootloader")))
	require.Equal(t, "INFOreboot-bootloader not supported, rebooting normally.OKAY", string(vp.Sent))
	require.Equal(t, 1, wdt.Resets)
}

func TestDispatchGetvar(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("getvar:version")))
	require.Equal(t, "OKAY0.4", string(vp.Sent))
}

func TestWatchdogTickledOnlyOnce(t *testing.T) {
	wdt := &NoopWatchdog{}
	s, _ := newTestSession(t, transport.USB, func(c *Configuration) {
		c.Watchdog = wdt
	})
	require.NoError(t, s.dispatch([]byte("getvar:version")))
	require.NoError(t, s.dispatch([]byte("getvar:version")))
	require.Len(t, wdt.Tickles, 1)
}

// End-to-end scenarios from the protocol spec.
func TestScenarioGetvarVersion(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("getvar:version")))
	require.Equal(t, "OKAY0.4", string(vp.Sent))
}

func TestScenarioGetvarMaxDownloadSize(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.MaxDownloadSize = 8388608
	})
	require.NoError(t, s.dispatch([]byte("getvar:max-download-size")))
	require.Equal(t, "OKAY8388608", string(vp.Sent))
}

func TestScenarioGetvarSerialno(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, func(c *Configuration) {
		c.SerialNumber = []byte{0xDE, 0xAD, 0xBE, 0xEF}
	})
	require.NoError(t, s.dispatch([]byte("getvar:serialno")))
	require.Equal(t, "OKAYDEADBEEF", string(vp.Sent))
}

func TestScenarioEraseSystem(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("erase:system")))
	require.Equal(t, "FAILNot supported", string(vp.Sent))
}

func TestScenarioContinueReturns(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("continue")))
	require.Equal(t, "OKAY", string(vp.Sent))
	require.True(t, s.ContinueLatched())
}

func TestScenarioZeroDownload(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("download:00000000")))
	require.Equal(t, "FAILZero download size", string(vp.Sent))
	require.Equal(t, phaseExpectCommand, s.phase)
}

func TestScenarioFlashSystem(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	require.NoError(t, s.dispatch([]byte("flash:system")))
	require.Equal(t, "FAILnot implemented", string(vp.Sent))
}

func TestScenarioCommandTooLarge(t *testing.T) {
	s, vp := newTestSession(t, transport.USB, nil)
	block := make([]byte, 80)
	for i := range block {
		block[i] = 'a'
	}
	require.NoError(t, s.dispatch(block))
	require.Equal(t, "FAILCommand too large", string(vp.Sent))
}
