package fastboot

import "errors"

// Construction-time errors. These never reach the wire; per the session's
// error handling rules, a configuration problem is reported to the caller
// and the session is never entered.
var (
	ErrMissingCapability = errors.New("fastboot: pipe or stage buffer not configured")
	ErrUnknownTransport  = errors.New("fastboot: unknown transport kind")
)

// wireFail is a FAIL<text> response modeled as an error value, the same way
// the reference stack's SDO abort codes are typed values that happen to
// implement error but really describe a wire-level status. Dispatch code
// can return a wireFail and let sendFail turn it into a frame, instead of
// repeating the literal at every call site.
type wireFail string

func (w wireFail) Error() string { return string(w) }

const (
	errCommandTooLarge             = wireFail("Command too large")
	errCommandNotRecognised        = wireFail("Command not recognised.")
	errCommandNotRecognisedVersion = wireFail("Command not recognised. Check Fastboot version.")
	errVariableNotFound            = wireFail("Variable not found")
	errNotSupported                = wireFail("Not supported")
	errNumberError                 = wireFail("Number error")
	errZeroDownloadSize            = wireFail("Zero download size")
	errNotEnoughMemory             = wireFail("Not enough memory")
	errNotImplemented              = wireFail("not implemented")
	errUnknownPartition            = wireFail("unknown partition")
	errDeviceError                 = wireFail("DeviceError")
)
