package fastboot

import (
	"strings"

	"github.com/keembay/fastboot/internal/hexcodec"
)

// resolveVar resolves the suffix of getvar: against the static/dynamic
// table. Order matters: version-bootloader and version-baseband are tested
// before the bare version, since they share its prefix.
func (s *Session) resolveVar(name string) (string, error) {
	switch {
	case strings.HasPrefix(name, "version-bootloader"):
		return "1.0", nil
	case strings.HasPrefix(name, "version-baseband"):
		return "N/A", nil
	case strings.HasPrefix(name, "version"):
		return "0.4", nil
	case strings.HasPrefix(name, "product"):
		return s.cfg.Product, nil
	case strings.HasPrefix(name, "serialno"):
		return s.serialNoVar()
	case strings.HasPrefix(name, "secure"):
		return yesNo(s.cfg.Secure), nil
	case strings.HasPrefix(name, "is-userspace"):
		return "no", nil
	case strings.HasPrefix(name, "max-download-size"):
		return s.maxDownloadSizeVar()
	case strings.HasPrefix(name, "Bootstage"):
		return string(s.cfg.BootStage), nil
	case strings.HasPrefix(name, "Recovery"):
		return yesNo(s.cfg.Recovery), nil
	default:
		return "", errVariableNotFound
	}
}

func (s *Session) serialNoVar() (string, error) {
	n := len(s.cfg.SerialNumber)
	if n == 0 || 2*n > 60 {
		return "", errNotSupported
	}
	dst := make([]byte, 2*n)
	hexcodec.FormatBytes(dst, s.cfg.SerialNumber)
	return string(dst), nil
}

func (s *Session) maxDownloadSizeVar() (string, error) {
	var dst [10]byte
	n := hexcodec.FormatDecimal(dst[:], s.cfg.MaxDownloadSize)
	if n > 60 {
		return "", errNotSupported
	}
	return string(dst[:n]), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
