// Package config loads the Fastboot session's read-only configuration from
// an INI-formatted device description file: one section per concern, the
// same way the reference object-dictionary loader turns an EDS file into
// an in-memory structure. Parsing happens once at construction time; the
// result is never mutated afterwards.
package config

import (
	"fmt"
	"math"

	"gopkg.in/ini.v1"
)

// Transport selects which byte pipe the session is bound to.
type Transport string

const (
	USB  Transport = "usb"
	SPIS Transport = "spis"
)

// BootStage names the ARM Trusted Firmware-style boot stage the core is
// running under. BL1 is the first stage (ROM); later stages progressively
// relax security restrictions.
type BootStage string

const (
	BL1    BootStage = "bl1"
	BL2    BootStage = "bl2"
	BL31   BootStage = "bl31"
	BL32   BootStage = "bl32"
	BL33   BootStage = "bl33"
	MA2X8X BootStage = "ma2x8x"
)

var validBootStages = map[BootStage]bool{
	BL1: true, BL2: true, BL31: true, BL32: true, BL33: true, MA2X8X: true,
}

// Device is the parsed device configuration.
type Device struct {
	Transport Transport
	Channel   string

	Product      string
	SerialNumber []byte

	MaxDownloadSize uint32
	HardCapBytes    uint32

	BootStage BootStage
	Debug     bool
	Secure    bool
	Recovery  bool
}

// Load parses path (an INI file) into a Device. Recognised sections and
// keys:
//
//	[transport]
//	  selector = usb | spis
//	  channel  = <transport-specific endpoint identifier>
//	[device]
//	  product      = <product string reported by getvar:product>
//	  serialNumber = <hex-encoded serial number, e.g. DEADBEEF>
//	[download]
//	  maxSize = <bytes advertised via getvar:max-download-size>
//	  hardCap = <SOC_FIP_MAX_SIZE, bytes>
//	[boot]
//	  stage    = bl1 | bl2 | bl31 | bl32 | bl33 | ma2x8x
//	  debug    = true | false
//	  secure   = true | false
//	  recovery = true | false
func Load(path string) (*Device, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return fromFile(f)
}

func fromFile(f *ini.File) (*Device, error) {
	d := &Device{}

	transportSection := f.Section("transport")
	d.Transport = Transport(transportSection.Key("selector").MustString(string(USB)))
	if d.Transport != USB && d.Transport != SPIS {
		return nil, fmt.Errorf("config: unknown transport selector %q", d.Transport)
	}
	d.Channel = transportSection.Key("channel").String()

	deviceSection := f.Section("device")
	d.Product = deviceSection.Key("product").String()
	serial := deviceSection.Key("serialNumber").String()
	if serial != "" {
		decoded, err := decodeHexSerial(serial)
		if err != nil {
			return nil, fmt.Errorf("config: serialNumber: %w", err)
		}
		d.SerialNumber = decoded
	}

	downloadSection := f.Section("download")
	maxSize, err := downloadSection.Key("maxSize").Uint()
	if err != nil {
		return nil, fmt.Errorf("config: download.maxSize: %w", err)
	}
	if maxSize > math.MaxUint32 {
		return nil, fmt.Errorf("config: download.maxSize: %d out of range", maxSize)
	}
	d.MaxDownloadSize = uint32(maxSize)

	hardCap, err := downloadSection.Key("hardCap").Uint()
	if err != nil {
		return nil, fmt.Errorf("config: download.hardCap: %w", err)
	}
	if hardCap > math.MaxUint32 {
		return nil, fmt.Errorf("config: download.hardCap: %d out of range", hardCap)
	}
	d.HardCapBytes = uint32(hardCap)

	bootSection := f.Section("boot")
	d.BootStage = BootStage(bootSection.Key("stage").MustString(string(BL1)))
	if !validBootStages[d.BootStage] {
		return nil, fmt.Errorf("config: unknown boot stage %q", d.BootStage)
	}
	d.Debug = bootSection.Key("debug").MustBool(false)
	d.Secure = bootSection.Key("secure").MustBool(true)
	d.Recovery = bootSection.Key("recovery").MustBool(false)

	return d, nil
}

func decodeHexSerial(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex string %q", s)
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid hex digit in %q", s)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
