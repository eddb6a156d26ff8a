package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/blob"
)

func newContent(t *testing.T) (*usecase.ContentUseCase, *blob.MemoryStore) {
	t.Helper()
	blobs := blob.NewMemoryStore("/api/v1/blobs")
	return usecase.NewContentUseCase(demoStore(t), blobs, time.Minute), blobs
}

func TestContent_SetYGet(t *testing.T) {
	ctx := context.Background()
	uc, _ := newContent(t)
	k := entity.StoreContentKey(amazonUS)

	c, err := uc.Get(ctx, k)
	require.NoError(t, err)
	assert.Empty(t, c.Description)

	_, err = uc.Set(ctx, k, dto.ContentRequest{Description: "  Tarjeta regalo  ", Terms: "Sin vencimiento"})
	require.NoError(t, err)
	c, err = uc.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta regalo", c.Description)
	assert.Equal(t, "Sin vencimiento", c.Terms)

	_, err = uc.Set(ctx, k, dto.ContentRequest{})
	require.NoError(t, err)
	c, err = uc.Get(ctx, k)
	require.NoError(t, err)
	assert.Empty(t, c.Terms, "todo vacío borra el contenido")
}

func TestContent_DuenoInexistente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newContent(t)

	_, err := uc.Set(ctx, entity.StoreContentKey(entity.StoreKey{Country: "US", Name: "Nope"}), dto.ContentRequest{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	_, err = uc.Get(ctx, entity.ComboContentKey("no-existe"))
	assert.ErrorIs(t, err, domain.ErrComboNotFound)
}

func TestContent_SubirImagenReemplazaLaAnterior(t *testing.T) {
	ctx := context.Background()
	uc, blobs := newContent(t)
	k := entity.ComboContentKey("combo-us")

	first, err := uc.UploadImage(ctx, k, "a.png", "image/png", 3, strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "images/combo/combo-us/a.png", first.ObjectKey)
	assert.Contains(t, first.URL, "/api/v1/blobs/")

	second, err := uc.UploadImage(ctx, k, "b image.png", "image/png", 2, strings.NewReader("de"))
	require.NoError(t, err)
	assert.Equal(t, "images/combo/combo-us/b_image.png", second.ObjectKey)

	_, _, err = blobs.Get(ctx, first.ObjectKey)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la imagen anterior se borra")

	rc, info, err := uc.OpenImage(ctx, second.ObjectKey)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "de", string(body))
	assert.Equal(t, "image/png", info.ContentType)

	got, err := uc.ImageURL(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, second.ObjectKey, got.ObjectKey)
}

func TestContent_SubirImagenValida(t *testing.T) {
	ctx := context.Background()
	uc, _ := newContent(t)
	k := entity.StoreContentKey(amazonUS)

	_, err := uc.UploadImage(ctx, k, "a.txt", "text/plain", 3, strings.NewReader("abc"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, k, "a.png", "image/png", usecase.MaxImageBytes+1, strings.NewReader("abc"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(ctx, entity.ComboContentKey("nada"), "a.png", "image/png", 3, strings.NewReader("abc"))
	assert.ErrorIs(t, err, domain.ErrComboNotFound)
}

func TestContent_BorrarImagen(t *testing.T) {
	ctx := context.Background()
	uc, blobs := newContent(t)
	k := entity.StoreContentKey(amazonUS)

	img, err := uc.UploadImage(ctx, k, "logo.jpg", "image/jpeg", 1, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "images/store/US-Amazon/logo.jpg", img.ObjectKey)

	require.NoError(t, uc.DeleteImage(ctx, k))
	_, _, err = blobs.Get(ctx, img.ObjectKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ImageURL(ctx, k)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteImage(ctx, k), domain.ErrNotFound)
}

func TestContent_ClaveSinAcentosNiSeparadores(t *testing.T) {
	ctx := context.Background()
	uc, _ := newContent(t)
	k := entity.StoreContentKey(entity.StoreKey{Country: "UK", Name: "Marks & Spencer"})

	img, err := uc.UploadImage(ctx, k, "logotipo añejo.png", "image/png", 1, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "images/store/UK-Marks_and_Spencer/logotipo_anejo.png", img.ObjectKey)
}
