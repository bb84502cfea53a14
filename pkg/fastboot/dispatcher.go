package fastboot

// dispatch routes one inbound block according to the current phase: a
// command in EXPECT_COMMAND, or a data-phase chunk in EXPECT_DATA.
func (s *Session) dispatch(block []byte) error {
	if s.phase == phaseExpectData {
		return s.accumulateDownload(block)
	}

	cmd, err := parseCommand(block)
	if err != nil {
		if sendErr := s.sendFail(err); sendErr != nil {
			return sendErr
		}
	} else if err := s.dispatchCommand(cmd); err != nil {
		return err
	}

	s.tickleWatchdogOnce()
	return nil
}

func (s *Session) dispatchCommand(cmd command) error {
	switch cmd.verb {
	case verbGetvar:
		val, err := s.resolveVar(cmd.arg)
		if err != nil {
			return s.sendFail(err)
		}
		return s.sendOkay(val)

	case verbDownload:
		return s.negotiateDownload(cmd.arg)

	case verbUpload:
		return s.upload()

	case verbErase:
		return s.sendFail(errNotSupported)

	case verbFlash:
		return s.dispatchFlash(cmd.arg)

	case verbBoot:
		return s.sendFail(errNotSupported)

	case verbContinue:
		s.continueFlag = true
		return s.sendOkay("")

	case verbReboot, verbRebootBootloader:
		return s.dispatchReboot(cmd.verb)

	default:
		return s.sendFail(errCommandNotRecognised)
	}
}

func (s *Session) dispatchFlash(partition string) error {
	switch partition {
	case "boot":
		data := s.cfg.StageBuffer[:s.downloadTotal]
		if err := s.cfg.PartitionWriter.Write("boot", data); err != nil {
			return s.sendFail(err)
		}
		return s.sendOkay("")
	case "system":
		return s.sendFail(errNotImplemented)
	default:
		return s.sendFail(errUnknownPartition)
	}
}

func (s *Session) dispatchReboot(v verb) error {
	if s.cfg.BootStage == BL1 {
		return s.sendFail(errNotSupported)
	}
	if v == verbRebootBootloader {
		if err := s.sendInfo("reboot-bootloader not supported, rebooting normally."); err != nil {
			return err
		}
	}
	if err := s.sendOkay(""); err != nil {
		return err
	}
	if err := s.cfg.Watchdog.Reset(); err != nil {
		s.logger.Warn("watchdog reset failed", "error", err)
	}
	return nil
}

// tickleWatchdogOnce refreshes the watchdog with half its default timeout
// the first time any command completes. Subsequent commands rely on the
// hardware watchdog's own period as the liveness backstop; this is
// deliberately not a periodic refresh.
func (s *Session) tickleWatchdogOnce() {
	if s.wdtTickled {
		return
	}
	s.wdtTickled = true
	if err := s.cfg.Watchdog.Tickle(defaultWatchdogTimeout / 2); err != nil {
		s.logger.Warn("watchdog tickle failed", "error", err)
	}
}
