package fastboot

import "github.com/keembay/fastboot/pkg/transport"

const frameSize = 64

const (
	prefixOkay = "OKAY"
	prefixFail = "FAIL"
	prefixData = "DATA"
	prefixInfo = "INFO"
)

// sendFrame emits prefix+payload as a response frame: at most 64 bytes, with
// transport-specific tail handling. A payload that would overflow the frame
// is replaced wholesale with FAILDeviceError, matching the wire-compatible
// (if surprising) behaviour of the original framer.
func (s *Session) sendFrame(prefix, payload string) error {
	full := prefix + payload
	if len(full) > frameSize {
		s.logger.Warn("response payload too long, substituting DeviceError",
			"prefix", prefix, "length", len(full))
		full = prefixFail + string(errDeviceError)
	}

	if s.cfg.Transport == transport.SPIS {
		if err := s.cfg.Pipe.PrepResponse(); err != nil {
			s.logger.Warn("prep_response failed, emitting stale frame anyway", "error", err)
		}
	}

	for i := 0; i < len(full); i++ {
		if err := s.cfg.Pipe.WriteByte(full[i]); err != nil {
			return err
		}
	}

	if s.cfg.Transport == transport.SPIS {
		for i := len(full); i < frameSize; i++ {
			if err := s.cfg.Pipe.WriteByte(0); err != nil {
				return err
			}
		}
		return nil
	}

	return s.cfg.Pipe.Flush()
}

func (s *Session) sendOkay(payload string) error { return s.sendFrame(prefixOkay, payload) }
func (s *Session) sendFail(err error) error       { return s.sendFrame(prefixFail, err.Error()) }
func (s *Session) sendData(payload string) error  { return s.sendFrame(prefixData, payload) }
func (s *Session) sendInfo(payload string) error   { return s.sendFrame(prefixInfo, payload) }

// writeRaw pushes n raw bytes onto the pipe outside of the 64-byte response
// framing, used by upload to stream the staged image back. It flushes once
// at the end on USB; SPIS has already clocked the whole payload by the time
// prep_response would matter again, so no padding applies here.
func (s *Session) writeRaw(data []byte) error {
	for _, b := range data {
		if err := s.cfg.Pipe.WriteByte(b); err != nil {
			return err
		}
	}
	if s.cfg.Transport == transport.USB {
		return s.cfg.Pipe.Flush()
	}
	return nil
}
