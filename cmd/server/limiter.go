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
	max       int
	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{max: limit, ipCounter: make(map[string]int)}
}

func getIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	return addr.String()
}

// acquire reserves a slot for ip and reports the count after the attempt.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.max > 0 && l.ipCounter[ip] >= l.max {
		return l.ipCounter[ip], false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
		return 0
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s.RemoteAddr())

		current, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", current+1, "current_limit", l.max)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", current+1, l.max)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", current, "limit", l.max)
		defer func() {
			log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
		}()
		next(s)
	}
}
