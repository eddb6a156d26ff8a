// Package snapshot codifica el estado completo en buckets JSON versionados y migra
// snapshots antiguos al esquema actual.
package snapshot

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// SchemaVersion versión del esquema que escribe Encode.
const SchemaVersion = 2

// MetaBucket guarda la versión del esquema.
const MetaBucket = "meta"

// Meta contenido del bucket meta.
type Meta struct {
	SchemaVersion int    `json:"schema_version"`
	StateVersion  uint64 `json:"state_version"`
}

// Report resume lo ocurrido al decodificar.
type Report struct {
	FromVersion  int
	Migrated     bool
	StateVersion uint64
	Corrupt      []string // buckets ilegibles que se reemplazaron por vacíos
}

// buckets asocia cada nombre de bucket v2 con su campo del estado.
func buckets(s *entity.State) map[string]any {
	return map[string]any{
		"tenants":         &s.Tenants,
		"stores":          &s.Stores,
		"categories":      &s.Categories,
		"catalogs":        &s.Catalogs,
		"assignments":     &s.Assignments,
		"tenant_catalogs": &s.TenantCatalogs,
		"master_combos":   &s.MasterCombos,
		"combo_instances": &s.ComboInstances,
		"swap_lists":      &s.SwapLists,
		"swap_rules":      &s.SwapRules,
		"store_active":    &s.StoreActive,
		"store_suppliers": &s.StoreSuppliers,
		"content":         &s.Content,
		"images":          &s.Images,
		"tenant_notes":    &s.TenantNotes,
	}
}

// BucketNames nombres de los buckets v2 (sin meta), ordenados.
func BucketNames() []string {
	names := make([]string, 0, 16)
	for name := range buckets(entity.NewState()) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode serializa el estado en buckets, incluido meta.
func Encode(s *entity.State, stateVersion uint64) (map[string][]byte, error) {
	out := make(map[string][]byte, 16)
	for name, target := range buckets(s) {
		b, err := json.Marshal(target)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = b
	}
	meta, err := json.Marshal(Meta{SchemaVersion: SchemaVersion, StateVersion: stateVersion})
	if err != nil {
		return nil, fmt.Errorf("encode meta: %w", err)
	}
	out[MetaBucket] = meta
	return out, nil
}

// Decode reconstruye el estado. Sin buckets devuelve un estado vacío. Un bucket corrupto
// no aborta la carga: queda vacío y se informa en Report.Corrupt.
// Snapshots sin meta se tratan como v1 y se migran.
func Decode(raw map[string][]byte) (*entity.State, Report, error) {
	st := entity.NewState()
	rep := Report{FromVersion: SchemaVersion}
	if len(raw) == 0 {
		return st, rep, nil
	}

	version := 1
	if b, ok := raw[MetaBucket]; ok {
		var meta Meta
		if err := json.Unmarshal(b, &meta); err != nil || meta.SchemaVersion == 0 {
			rep.Corrupt = append(rep.Corrupt, MetaBucket)
		} else {
			version = meta.SchemaVersion
			rep.StateVersion = meta.StateVersion
		}
	}
	if version > SchemaVersion {
		return nil, rep, fmt.Errorf("snapshot con esquema %d más nuevo que el soportado (%d)", version, SchemaVersion)
	}
	rep.FromVersion = version

	targets := buckets(st)
	for _, name := range sortedKeys(raw) {
		target, ok := targets[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw[name], target); err != nil {
			rep.Corrupt = append(rep.Corrupt, name)
			resetBucket(st, name)
		}
	}
	st.Normalize()

	for v := version; v < SchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return nil, rep, fmt.Errorf("no hay migración desde el esquema %d", v)
		}
		corrupt := m(raw, st)
		rep.Corrupt = append(rep.Corrupt, corrupt...)
		rep.Migrated = true
	}
	st.Normalize()
	return st, rep, nil
}

// resetBucket anula un campo que pudo quedar a medio decodificar; Normalize lo reinicializa.
func resetBucket(st *entity.State, name string) {
	v := reflect.ValueOf(buckets(st)[name]).Elem()
	v.Set(reflect.Zero(v.Type()))
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
