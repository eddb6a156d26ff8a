package entity

import (
	"fmt"
	"strings"
	"time"
)

// ContentKind discrimina el tipo de entidad dueña de un contenido.
type ContentKind string

const (
	ContentKindStore ContentKind = "store"
	ContentKindCombo ContentKind = "combo"
)

// ContentKey es la clave (unión etiquetada) de las tablas de contenido e imágenes:
// una tienda (StoreKey) o un combo (ID). Es comparable y sirve como clave de mapa.
type ContentKey struct {
	kind    ContentKind
	store   StoreKey
	comboID string
}

// StoreContentKey clave de contenido de una tienda.
func StoreContentKey(k StoreKey) ContentKey {
	return ContentKey{kind: ContentKindStore, store: k}
}

// ComboContentKey clave de contenido de un combo.
func ComboContentKey(id string) ContentKey {
	return ContentKey{kind: ContentKindCombo, comboID: id}
}

// Kind devuelve el tipo de la clave.
func (k ContentKey) Kind() ContentKind { return k.kind }

// Store devuelve la tienda si la clave es de tienda.
func (k ContentKey) Store() (StoreKey, bool) {
	return k.store, k.kind == ContentKindStore
}

// ComboID devuelve el ID de combo si la clave es de combo.
func (k ContentKey) ComboID() (string, bool) {
	return k.comboID, k.kind == ContentKindCombo
}

func (k ContentKey) String() string {
	switch k.kind {
	case ContentKindStore:
		return string(ContentKindStore) + ":" + k.store.String()
	case ContentKindCombo:
		return string(ContentKindCombo) + ":" + k.comboID
	}
	return ""
}

// MarshalText serializa como "store:{country}-{name}" o "combo:{id}".
func (k ContentKey) MarshalText() ([]byte, error) {
	if k.kind == "" {
		return nil, fmt.Errorf("clave de contenido vacía")
	}
	return []byte(k.String()), nil
}

// UnmarshalText interpreta la forma serializada.
func (k *ContentKey) UnmarshalText(b []byte) error {
	kind, rest, ok := strings.Cut(string(b), ":")
	if !ok || rest == "" {
		return fmt.Errorf("clave de contenido inválida: %q", string(b))
	}
	switch ContentKind(kind) {
	case ContentKindStore:
		sk, err := ParseStoreKey(rest)
		if err != nil {
			return err
		}
		*k = StoreContentKey(sk)
	case ContentKindCombo:
		*k = ComboContentKey(rest)
	default:
		return fmt.Errorf("tipo de contenido desconocido: %q", kind)
	}
	return nil
}

// Content textos editoriales de una tienda o combo.
type Content struct {
	Description  string    `json:"description"`
	Terms        string    `json:"terms"`
	Instructions string    `json:"instructions"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Image referencia a un objeto en el blob store.
type Image struct {
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
