package clipboard

import (
	atotto "github.com/atotto/clipboard"

	"github.com/nhollis/flowdeck/logging"
)

// Copy puts text on the system clipboard. The atotto backend covers the
// common desktop setups; when it is unavailable (headless, odd session
// types) fall back to the platform tool and finally to OSC52 so remote
// terminals still work.
func Copy(text string) error {
	if !atotto.Unsupported {
		if err := atotto.WriteAll(text); err == nil {
			logging.Debugf("Clipboard: copied via system clipboard")
			return nil
		} else {
			logging.Warnf("Clipboard: system clipboard failed: %v", err)
		}
	}

	if err := copyPlatform(text); err == nil {
		logging.Debugf("Clipboard: copied via platform tool")
		return nil
	} else {
		logging.Warnf("Clipboard: platform tool failed: %v", err)
	}

	return copyOSC52(text)
}
