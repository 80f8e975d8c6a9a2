package uploadsvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sir_venger/panel_lite/internal/models"
)

// tmpSuffix помечает частично записанные загрузки; Retrieve их никогда не видит.
const tmpSuffix = ".tmp"

// Service принимает бинарные загрузки и отдаёт их обратно поверх локального
// каталога. Каталог принадлежит сервису эксклюзивно.
type Service struct {
	dir      string
	maxBytes int64
	log      *zap.SugaredLogger
}

// New создаёт каталог загрузок (идемпотентно) и возвращает сервис.
func New(dir string, maxBytes int64, log *zap.SugaredLogger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir: %v", models.ErrStoreUnavailable, err)
	}

	return &Service{
		dir:      dir,
		maxBytes: maxBytes,
		log:      log,
	}, nil
}

// MaxBytes возвращает действующий лимит размера одной загрузки.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Accept стримит содержимое r на диск под уникальным именем. declaredSize < 0
// означает «размер неизвестен» — тогда лимит контролируется только по факту
// записанных байт. Частично записанный файл при любой ошибке удаляется.
func (s *Service) Accept(ctx context.Context, r io.Reader, originalName string, declaredSize int64) (models.UploadResult, error) {
	if declaredSize > s.maxBytes {
		return models.UploadResult{}, fmt.Errorf("%w: declared %d bytes, limit %d", models.ErrTooLarge, declaredSize, s.maxBytes)
	}

	// Каталог могли удалить из-под сервиса между запросами; пересоздание
	// идемпотентно и не конфликтует между конкурентными загрузками.
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: create upload dir: %v", models.ErrUploadFailed, err)
	}

	name := newUploadName(originalName)
	dst := filepath.Join(s.dir, name)
	tmpPath := dst + tmpSuffix

	// O_EXCL ловит коллизию имени: при гонке в одну миллисекунду uuid-компонента
	// достаточно, но совпадение всё равно трактуем как ошибку, а не перезапись.
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: create temp: %v", models.ErrUploadFailed, err)
	}

	// Читаем на один байт больше лимита, чтобы отличить «ровно лимит» от перебора,
	// не записывая на диск неограниченный поток.
	written, err := io.Copy(f, io.LimitReader(contextReader{ctx: ctx, r: r}, s.maxBytes+1))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return models.UploadResult{}, fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}
	if written > s.maxBytes {
		f.Close()
		os.Remove(tmpPath)
		return models.UploadResult{}, fmt.Errorf("%w: limit %d bytes exceeded", models.ErrTooLarge, s.maxBytes)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return models.UploadResult{}, fmt.Errorf("%w: close temp: %v", models.ErrUploadFailed, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return models.UploadResult{}, fmt.Errorf("%w: rename: %v", models.ErrUploadFailed, err)
	}

	return models.UploadResult{
		Filename:     name,
		URL:          "/uploads/" + name,
		OriginalName: originalName,
		Size:         written,
	}, nil
}

// Retrieve открывает ранее принятую загрузку только на чтение.
func (s *Service) Retrieve(name string) (io.ReadCloser, int64, error) {
	clean, err := safeName(name)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", models.ErrNotFound, clean)
		}
		return nil, 0, fmt.Errorf("%w: open: %v", models.ErrUploadFailed, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: stat: %v", models.ErrUploadFailed, err)
	}

	return f, info.Size(), nil
}

// Stats возвращает количество и суммарный размер принятых загрузок.
func (s *Service) Stats() (int, int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read upload dir: %v", models.ErrStoreUnavailable, err)
	}

	var count int
	var total int64
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		total += info.Size()
	}

	return count, total, nil
}

// safeName отклоняет всё, что может вывести путь за пределы каталога загрузок,
// ещё до обращения к файловой системе.
func safeName(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidPath, name)
	}

	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidPath, name)
	}

	return clean, nil
}

// contextReader прекращает чтение, как только клиент отменил запрос; обрыв
// превращается в обычную ошибку I/O и приводит к удалению частичного файла.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
