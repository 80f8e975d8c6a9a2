package catalogstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sir_venger/panel_lite/internal/models"
)

const catalogFileName = "catalog.json"

// Store отвечает за единственный JSON-документ каталога на локальном диске.
// Save сериализован глобальным writer-локом, Load выполняется конкурентно.
type Store struct {
	mu   sync.RWMutex
	dir  string
	path string
}

// New создаёт каталог данных (идемпотентно) и возвращает стор поверх него.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", models.ErrStoreUnavailable, err)
	}

	return &Store{
		dir:  dir,
		path: filepath.Join(dir, catalogFileName),
	}, nil
}

// Path возвращает путь к документу каталога на диске.
func (s *Store) Path() string {
	return s.path
}

// Load возвращает текущий каталог. Если документа ещё нет, сеет дефолтный
// и персистит его тем же атомарным путём записи. Существующий, но нечитаемый
// документ — это ErrCorruptStore: стор никогда не пересевает поверх чужих байт.
func (s *Store) Load() (models.Catalog, error) {
	s.mu.RLock()
	b, err := os.ReadFile(s.path)
	s.mu.RUnlock()
	if err == nil {
		return parseCatalog(b)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return models.Catalog{}, fmt.Errorf("%w: read catalog: %v", models.ErrStoreUnavailable, err)
	}

	// Первый запуск. Под writer-локом перепроверяем, что документ не появился
	// в конкурентном Load, и только потом сеем.
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, err := os.ReadFile(s.path); err == nil {
		return parseCatalog(b)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return models.Catalog{}, fmt.Errorf("%w: read catalog: %v", models.ErrStoreUnavailable, err)
	}

	seeded := DefaultCatalog()
	if err := s.writeLocked(seeded); err != nil {
		return models.Catalog{}, err
	}

	return seeded, nil
}

// Save целиком заменяет документ каталога. Политика конфликтов — last save wins:
// read-modify-write поверх Load/Save стор не координирует.
func (s *Store) Save(c models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(c)
}

// writeLocked пишет сериализованный каталог во временный файл в том же каталоге
// и атомарно подменяет цель через rename, чтобы читатель не увидел полузаписи.
func (s *Store) writeLocked(c models.Catalog) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", models.ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(s.dir, catalogFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", models.ErrSaveFailed, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp: %v", models.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp: %v", models.ErrSaveFailed, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %v", models.ErrSaveFailed, err)
	}

	return nil
}

// parseCatalog десериализует документ; любая ошибка парсинга — коррупция.
func parseCatalog(b []byte) (models.Catalog, error) {
	var c models.Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return models.Catalog{}, fmt.Errorf("%w: %v", models.ErrCorruptStore, err)
	}
	if c.Services == nil {
		c.Services = map[string]models.Service{}
	}

	return c, nil
}
