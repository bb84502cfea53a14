package fastboot

import (
	"github.com/keembay/fastboot/internal/hexcodec"
	"github.com/keembay/fastboot/pkg/transport"
)

// negotiateDownload handles the first phase of download:<hex>: parsing the
// size, admission-checking it against the stage buffer, and (transport
// permitting) either arming the data phase (USB) or pulling the whole
// payload in one shot (SPIS).
func (s *Session) negotiateDownload(arg string) error {
	if len(arg) > len(s.downloadSizeASCII) {
		return s.sendFail(errNumberError)
	}
	size, err := hexcodec.Parse([]byte(arg))
	if err != nil {
		return s.sendFail(errNumberError)
	}
	if size == 0 {
		return s.sendFail(errZeroDownloadSize)
	}
	if size > uint32(len(s.cfg.StageBuffer)) {
		return s.sendFail(errNotEnoughMemory)
	}

	s.downloadTotal = size
	s.downloadReceived = 0
	s.downloadSizeLen = copy(s.downloadSizeASCII[:], arg)

	if err := s.sendData(arg); err != nil {
		return err
	}

	if s.cfg.Transport == transport.USB {
		s.phase = phaseExpectData
		return nil
	}

	return s.negotiateDownloadSPIS(size)
}

func (s *Session) negotiateDownloadSPIS(size uint32) error {
	n, err := s.cfg.Pipe.ReadBulk(s.cfg.StageBuffer, size)
	if err != nil || n < size {
		s.downloadReceived = n
		return s.sendFrame(prefixFail, "")
	}

	s.downloadReceived = n
	s.stageValid = true
	if s.cfg.BootStage == BL1 {
		s.continueFlag = true
	}
	return s.sendOkay("")
}

// accumulateDownload handles an inbound data-phase block on USB: at most
// one response is sent, and only once the promised byte count is reached.
// Surplus bytes in an over-large block are silently dropped.
func (s *Session) accumulateDownload(block []byte) error {
	remaining := s.downloadTotal - s.downloadReceived
	n := uint32(len(block))
	if n > remaining {
		n = remaining
	}
	copy(s.cfg.StageBuffer[s.downloadReceived:s.downloadReceived+n], block[:n])
	s.downloadReceived += n

	if s.downloadReceived < s.downloadTotal {
		return nil
	}

	s.phase = phaseExpectCommand
	s.stageValid = true
	if s.cfg.BootStage == BL1 {
		s.continueFlag = true
	}
	return s.sendOkay("")
}

// upload streams the staged image back to the host. It is only permitted
// in debug builds of non-BL1 stages — the ROM must never exfiltrate staged
// contents.
func (s *Session) upload() error {
	if s.cfg.BootStage == BL1 || !s.cfg.Debug {
		return s.sendFail(errNotSupported)
	}
	if !s.stageValid {
		return s.sendFrame(prefixFail, "")
	}

	sizeASCII := string(s.downloadSizeASCII[:s.downloadSizeLen])
	if err := s.sendData(sizeASCII); err != nil {
		return err
	}
	if err := s.writeRaw(s.cfg.StageBuffer[:s.downloadTotal]); err != nil {
		return err
	}
	return s.sendOkay("")
}
