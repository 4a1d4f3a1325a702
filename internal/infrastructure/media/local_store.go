package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

var _ usecase.MediaStore = (*LocalStore)(nil)

// LocalStore guarda los archivos subidos en disco bajo root y los sirve como
// estáticos bajo /media. Cada archivo recibe un nombre único (uuid + extensión
// original) para que subidas repetidas no se pisen.
type LocalStore struct {
	root string
}

// NewLocalStore construye el store y crea el directorio raíz si no existe.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de media: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Root devuelve el directorio raíz (para montar app.Static).
func (s *LocalStore) Root() string {
	return s.root
}

// Save copia el archivo subido a <root>/<dir>/ y devuelve la referencia
// relativa al store (ej. "product/3f2a….jpg").
func (s *LocalStore) Save(dir string, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	ref := path.Join(dir, name)

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, dir, name))
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copiar archivo: %w", err)
	}
	return ref, nil
}

// URL resuelve la URL pública de una referencia: absoluta si hay base URL de
// la petición, relativa al store si no. Referencia vacía → URL vacía.
func (s *LocalStore) URL(ref, baseURL string) string {
	if ref == "" {
		return ""
	}
	u := "/media/" + ref
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + u
	}
	return u
}

// Remove borra el archivo referido; no-op si ya no existe.
func (s *LocalStore) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar %s: %w", ref, err)
	}
	return nil
}
