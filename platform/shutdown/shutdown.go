// Package shutdown coordinates graceful application shutdown. Hooks
// registered here (database close, in-flight request drain) are fired
// concurrently on SIGINT/SIGTERM, bounded by a grace period.
package shutdown

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
)

const gracePeriod = 10 * time.Second

// HookFunc is a shutdown hook. It receives the grace period remaining
// for its work.
type HookFunc func(gracePeriod time.Duration) error

var (
	mu         sync.Mutex
	hooks      []HookFunc
	isShutdown bool
)

// RegisterHook adds a hook to run at shutdown
func RegisterHook(fn HookFunc) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, fn)
}

// InProgress reports whether a shutdown has been initiated
func InProgress() bool {
	mu.Lock()
	defer mu.Unlock()
	return isShutdown
}

// InitShutdownService installs the signal handler. When a shutdown
// signal arrives, all hooks are fired concurrently and done is closed
// once they finish or the grace period expires.
func InitShutdownService(done chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(done)

		sig := <-sigChan
		log.Printf("Received shutdown signal: %v", sig)

		mu.Lock()
		isShutdown = true
		hooksCopy := make([]HookFunc, len(hooks))
		copy(hooksCopy, hooks)
		mu.Unlock()

		logger.Info("Running shutdown hooks", "count", len(hooksCopy))

		var wg sync.WaitGroup
		for i, hook := range hooksCopy {
			wg.Add(1)
			go func(n int, fn HookFunc) {
				defer wg.Done()
				if err := fn(gracePeriod); err != nil {
					logger.LogErr(err, "shutdown hook failed")
				}
				logger.F("Shutdown hook %d completed", n)
			}(i, hook)
		}

		hooksDone := make(chan struct{})
		go func() {
			wg.Wait()
			close(hooksDone)
		}()

		select {
		case <-hooksDone:
		case <-time.After(gracePeriod):
			log.Printf("Shutdown hooks timed out after %v", gracePeriod)
		}
	}()
}
