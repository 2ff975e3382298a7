package main

import (
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	max    int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{counts: make(map[string]int), max: limit}
}

func remoteIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	return addr.String()
}

// acquire takes a slot for ip. It reports the count the caller would have
// and whether the slot was granted.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempted := l.counts[ip] + 1
	if l.max > 0 && attempted > l.max {
		return attempted, false
	}
	l.counts[ip] = attempted
	return attempted, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
		return 0
	}
	return l.counts[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s.RemoteAddr())

		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count, "current_limit", l.max)
			fmt.Fprintf(s, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", count, l.max)
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.max)
		defer func() {
			log.Info("Connection closed", "ip", ip, "count_after", l.release(ip))
		}()
		next(s)
	}
}
