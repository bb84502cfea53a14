package fastboot

import "context"

// Run is the outer per-transport loop: poll availability, hand blocks to
// the dispatcher, and return once continue_flag is latched or ctx is
// cancelled. It is the only exported entry point that actually drives the
// protocol; New only constructs the session.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("fastboot session starting", "transport", s.cfg.Transport)

	for !s.continueFlag {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		avail := s.cfg.Pipe.Available()
		if avail == 0 {
			continue
		}

		block := make([]byte, avail)
		if err := s.cfg.Pipe.ReadBlock(block, avail); err != nil {
			return err
		}
		if err := s.dispatch(block); err != nil {
			return err
		}
	}

	s.logger.Info("fastboot session ending, continue latched")
	return nil
}
