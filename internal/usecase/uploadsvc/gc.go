package uploadsvc

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StartGC стартует периодическую очистку каталога от временных файлов,
// оставшихся после аварийно прерванных загрузок. Возвращает stop-функцию.
func (s *Service) StartGC(ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.sweepOnce(ttl); err != nil {
					s.log.Warnw("upload gc sweep failed", "error", err)
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// sweepOnce удаляет .tmp-файлы, чей модтайм старше ttl.
func (s *Service) sweepOnce(ttl time.Duration) error {
	now := time.Now()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) < ttl {
			continue
		}

		_ = os.Remove(filepath.Join(s.dir, e.Name()))
	}

	return nil
}
