package entity

import (
	"fmt"
	"slices"
	"strings"
)

// StoreKey identifica una tienda: el par (país, nombre). No existe ID sustituto.
type StoreKey struct {
	Country string
	Name    string
}

// String devuelve la forma compuesta "{country}-{name}".
func (k StoreKey) String() string {
	return k.Country + "-" + k.Name
}

// MarshalText permite usar StoreKey como clave de mapas JSON.
func (k StoreKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText interpreta "{country}-{name}". El país nunca contiene '-'.
func (k *StoreKey) UnmarshalText(b []byte) error {
	parsed, err := ParseStoreKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStoreKey interpreta la forma compuesta "{country}-{name}".
func ParseStoreKey(s string) (StoreKey, error) {
	country, name, ok := strings.Cut(s, "-")
	if !ok || country == "" || name == "" {
		return StoreKey{}, fmt.Errorf("clave de tienda inválida: %q", s)
	}
	return StoreKey{Country: country, Name: name}, nil
}

// Store representa una marca/tienda ofrecida en un país.
type Store struct {
	Name     string    `json:"name"`
	Country  string    `json:"country"`
	Products []Product `json:"products"`
}

// Key devuelve la identidad de la tienda.
func (s Store) Key() StoreKey {
	return StoreKey{Country: s.Country, Name: s.Name}
}

// Clone copia la tienda sin compartir el slice de productos.
func (s Store) Clone() Store {
	out := s
	out.Products = slices.Clone(s.Products)
	return out
}
