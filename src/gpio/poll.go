package gpio

import (
	"log/slog"
	"time"

	"liftctl/src/config"
)

// Poll reads the command inputs and button lamps at a fixed rate and delivers
// every snapshot on receiver. The commands are level-held, so snapshots are
// delivered unconditionally rather than on change. A read fault degrades to
// all lines low and is logged once per poller.
func Poll(dev Device, receiver chan<- Sample) {
	inputFaultLogged := false
	lampFaultLogged := false
	for {
		time.Sleep(config.InputPollRate)

		in, err := dev.ReadInputs()
		if err != nil {
			if !inputFaultLogged {
				slog.Error("Input read failed, treating all lines as low", "err", err)
				inputFaultLogged = true
			}
			in = Inputs{}
		}

		lamps, err := dev.ReadButtonLamps()
		if err != nil {
			if !lampFaultLogged {
				slog.Error("Button lamp read failed, treating lamps as off", "err", err)
				lampFaultLogged = true
			}
			lamps = Lamps{}
		}

		receiver <- Sample{Inputs: in, Lamps: lamps}
	}
}
