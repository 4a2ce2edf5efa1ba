package token_bucket

import "time"

func (l *KeyedLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
	l.lastSweep = now()
}

func (l *KeyedLimiter) Size() int {
	return l.size()
}
