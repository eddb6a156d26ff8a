package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
)

// MaxImageBytes tamaño máximo de una imagen subida.
const MaxImageBytes = 5 << 20

// ContentUseCase textos e imágenes de tiendas y combos.
type ContentUseCase struct {
	repo   repository.StateRepository
	blobs  ports.BlobStore
	urlTTL time.Duration
	now    func() time.Time
}

// NewContentUseCase construye el caso de uso. urlTTL es la vigencia de las URLs firmadas.
func NewContentUseCase(repo repository.StateRepository, blobs ports.BlobStore, urlTTL time.Duration) *ContentUseCase {
	return &ContentUseCase{repo: repo, blobs: blobs, urlTTL: urlTTL, now: time.Now}
}

// Get devuelve el contenido de la tienda o combo.
func (uc *ContentUseCase) Get(ctx context.Context, k entity.ContentKey) (*entity.Content, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := ownerExists(st, k); err != nil {
		return nil, err
	}
	c, ok := st.Content[k]
	if !ok {
		return &entity.Content{}, nil
	}
	return &c, nil
}

// Set reemplaza el contenido. Todo vacío lo borra.
func (uc *ContentUseCase) Set(ctx context.Context, k entity.ContentKey, in dto.ContentRequest) (*entity.Content, error) {
	c := entity.Content{
		Description:  strings.TrimSpace(in.Description),
		Terms:        strings.TrimSpace(in.Terms),
		Instructions: strings.TrimSpace(in.Instructions),
		UpdatedAt:    uc.now(),
	}
	_, err := uc.repo.Update(ctx, "content.set", func(s *entity.State) error {
		if err := ownerExists(s, k); err != nil {
			return err
		}
		if c.Description == "" && c.Terms == "" && c.Instructions == "" {
			delete(s.Content, k)
			return nil
		}
		s.Content[k] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UploadImage sube la imagen al blob store y registra la referencia. La imagen anterior se borra.
func (uc *ContentUseCase) UploadImage(ctx context.Context, k entity.ContentKey, filename, contentType string, size int64, body io.Reader) (*dto.ImageResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: tipo de contenido %q", domain.ErrInvalidInput, contentType)
	}
	if size <= 0 || size > MaxImageBytes {
		return nil, fmt.Errorf("%w: tamaño de imagen %d", domain.ErrInvalidInput, size)
	}
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := ownerExists(st, k); err != nil {
		return nil, err
	}

	objectKey := imageObjectKey(k, filename)
	info, err := uc.blobs.Put(ctx, objectKey, body, size, contentType)
	if err != nil {
		return nil, err
	}
	img := entity.Image{ObjectKey: info.Key, ContentType: contentType, UploadedAt: uc.now()}

	var previous string
	_, err = uc.repo.Update(ctx, "content.image", func(s *entity.State) error {
		if err := ownerExists(s, k); err != nil {
			return err
		}
		if old, ok := s.Images[k]; ok && old.ObjectKey != img.ObjectKey {
			previous = old.ObjectKey
		}
		s.Images[k] = img
		return nil
	})
	if err != nil {
		_ = uc.blobs.Delete(ctx, objectKey)
		return nil, err
	}
	if previous != "" {
		_ = uc.blobs.Delete(ctx, previous)
	}
	return uc.imageResponse(ctx, img)
}

// ImageURL devuelve la referencia de la imagen con una URL firmada vigente.
func (uc *ContentUseCase) ImageURL(ctx context.Context, k entity.ContentKey) (*dto.ImageResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	img, ok := st.Images[k]
	if !ok {
		return nil, fmt.Errorf("imagen de %s: %w", k, domain.ErrNotFound)
	}
	return uc.imageResponse(ctx, img)
}

// DeleteImage quita la referencia y borra el objeto.
func (uc *ContentUseCase) DeleteImage(ctx context.Context, k entity.ContentKey) error {
	var objectKey string
	_, err := uc.repo.Update(ctx, "content.image.delete", func(s *entity.State) error {
		img, ok := s.Images[k]
		if !ok {
			return fmt.Errorf("imagen de %s: %w", k, domain.ErrNotFound)
		}
		objectKey = img.ObjectKey
		delete(s.Images, k)
		return nil
	})
	if err != nil {
		return err
	}
	return uc.blobs.Delete(ctx, objectKey)
}

// OpenImage abre el objeto para servirlo directamente (blob store en memoria).
func (uc *ContentUseCase) OpenImage(ctx context.Context, objectKey string) (io.ReadCloser, ports.BlobInfo, error) {
	return uc.blobs.Get(ctx, objectKey)
}

func (uc *ContentUseCase) imageResponse(ctx context.Context, img entity.Image) (*dto.ImageResponse, error) {
	url, err := uc.blobs.PresignURL(ctx, img.ObjectKey, uc.urlTTL)
	if err != nil {
		return nil, err
	}
	return &dto.ImageResponse{ObjectKey: img.ObjectKey, ContentType: img.ContentType, URL: url, UploadedAt: img.UploadedAt}, nil
}

// ownerExists verifica que la tienda o el combo (maestro o instancia) existan.
func ownerExists(s *entity.State, k entity.ContentKey) error {
	if sk, ok := k.Store(); ok {
		if _, exists := s.Stores[sk]; !exists {
			return fmt.Errorf("%w: %s", domain.ErrStoreNotFound, sk)
		}
		return nil
	}
	if id, ok := k.ComboID(); ok {
		_, master := s.MasterCombos[id]
		_, instance := s.ComboInstances[id]
		if !master && !instance {
			return fmt.Errorf("%w: %s", domain.ErrComboNotFound, id)
		}
		return nil
	}
	return fmt.Errorf("%w: clave de contenido vacía", domain.ErrInvalidInput)
}

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", "'", "", "&", "and")

// safeSegment quita acentos y separadores para que el segmento sirva como parte de una clave S3.
func safeSegment(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return keyReplacer.Replace(folded)
}

func imageObjectKey(k entity.ContentKey, filename string) string {
	clean := safeSegment(filename)
	if clean == "" {
		clean = "image"
	}
	if sk, ok := k.Store(); ok {
		return "images/store/" + safeSegment(sk.String()) + "/" + clean
	}
	id, _ := k.ComboID()
	return "images/combo/" + safeSegment(id) + "/" + clean
}
