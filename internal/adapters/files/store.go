// Package files maneja el directorio de uploads: adjuntos de entradas
// clínicas y el cache write-once de certificados generados.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveAttachment persiste un archivo subido, con nombre keyed por child,
// timestamp y nombre original (más un sufijo corto para no pisar dos
// uploads del mismo segundo). Devuelve la ruta guardada tal como se
// almacena en la entrada clínica.
func (s *Store) SaveAttachment(childID int64, ts time.Time, originalName string, r io.Reader) (string, error) {
	base := filepath.Base(strings.TrimSpace(originalName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "attachment"
	}

	name := fmt.Sprintf("%d_%d_%s_%s", childID, ts.UTC().Unix(), uuid.NewString()[:8], base)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return path, nil
}

func (s *Store) certificatePath(childID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("birth_certificate_%d.pdf", childID))
}

// CertificateOnce devuelve el certificado del child desde disco si ya
// existe; si no, lo renderiza con render y lo deja escrito. El archivo es
// solo una optimización: si la escritura falla se devuelven igual los
// bytes renderizados.
func (s *Store) CertificateOnce(childID int64, render func() ([]byte, error)) ([]byte, error) {
	path := s.certificatePath(childID)

	if b, err := os.ReadFile(path); err == nil && len(b) > 0 {
		return b, nil
	}

	b, err := render()
	if err != nil {
		return nil, err
	}

	_ = os.WriteFile(path, b, 0o640)
	return b, nil
}
