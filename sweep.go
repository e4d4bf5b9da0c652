package lingo

import "time"

// sweepLoop runs the periodic guild-entry expiry sweep until Close. The
// sweep runs on a fixed interval independent of request traffic.
func (t *Translator) sweepLoop() {
	ticker := time.NewTicker(t.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			if n := t.sweepExpiredGuilds(); n > 0 {
				t.logger.Debug("swept expired guild languages", "removed", n)
			}
		}
	}
}
