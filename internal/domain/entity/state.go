package entity

import "sort"

// State es la fuente única de verdad: todas las colecciones del sistema en un solo valor.
// Se modifica siempre sobre una copia (Clone) que luego reemplaza a la anterior.
type State struct {
	Tenants        map[string]Tenant                        `json:"tenants"`
	Stores         map[StoreKey]Store                       `json:"stores"`
	Categories     map[string]Category                      `json:"categories"`
	Catalogs       map[string]Catalog                       `json:"catalogs"`
	Assignments    map[string]string                        `json:"assignments"` // tenantID → catalogID activo
	TenantCatalogs map[TenantCatalogKey]TenantCatalogConfig `json:"tenant_catalogs"`
	MasterCombos   map[string]MasterCombo                   `json:"master_combos"`
	ComboInstances map[string]ComboInstance                 `json:"combo_instances"`
	SwapLists      map[string]SwapList                      `json:"swap_lists"`
	SwapRules      map[string]string                        `json:"swap_rules"` // catalogID → swapListID
	StoreActive    map[StoreKey]bool                        `json:"store_active"`
	StoreSuppliers map[StoreKey]StoreSupplierData           `json:"store_suppliers"`
	Content        map[ContentKey]Content                   `json:"content"`
	Images         map[ContentKey]Image                     `json:"images"`
	TenantNotes    map[string]string                        `json:"tenant_notes"`
}

// NewState devuelve un estado vacío con todos los mapas inicializados.
func NewState() *State {
	s := &State{}
	s.ensureMaps()
	return s
}

func (s *State) ensureMaps() {
	if s.Tenants == nil {
		s.Tenants = map[string]Tenant{}
	}
	if s.Stores == nil {
		s.Stores = map[StoreKey]Store{}
	}
	if s.Categories == nil {
		s.Categories = map[string]Category{}
	}
	if s.Catalogs == nil {
		s.Catalogs = map[string]Catalog{}
	}
	if s.Assignments == nil {
		s.Assignments = map[string]string{}
	}
	if s.TenantCatalogs == nil {
		s.TenantCatalogs = map[TenantCatalogKey]TenantCatalogConfig{}
	}
	if s.MasterCombos == nil {
		s.MasterCombos = map[string]MasterCombo{}
	}
	if s.ComboInstances == nil {
		s.ComboInstances = map[string]ComboInstance{}
	}
	if s.SwapLists == nil {
		s.SwapLists = map[string]SwapList{}
	}
	if s.SwapRules == nil {
		s.SwapRules = map[string]string{}
	}
	if s.StoreActive == nil {
		s.StoreActive = map[StoreKey]bool{}
	}
	if s.StoreSuppliers == nil {
		s.StoreSuppliers = map[StoreKey]StoreSupplierData{}
	}
	if s.Content == nil {
		s.Content = map[ContentKey]Content{}
	}
	if s.Images == nil {
		s.Images = map[ContentKey]Image{}
	}
	if s.TenantNotes == nil {
		s.TenantNotes = map[string]string{}
	}
}

// Normalize inicializa los mapas nulos (p.ej. después de decodificar un snapshot parcial).
func (s *State) Normalize() { s.ensureMaps() }

// Clone copia profunda del estado completo.
func (s *State) Clone() *State {
	out := NewState()
	for k, v := range s.Tenants {
		out.Tenants[k] = v
	}
	for k, v := range s.Stores {
		out.Stores[k] = v.Clone()
	}
	for k, v := range s.Categories {
		out.Categories[k] = v
	}
	for k, v := range s.Catalogs {
		out.Catalogs[k] = v.Clone()
	}
	for k, v := range s.Assignments {
		out.Assignments[k] = v
	}
	for k, v := range s.TenantCatalogs {
		out.TenantCatalogs[k] = v.Clone()
	}
	for k, v := range s.MasterCombos {
		out.MasterCombos[k] = v.Clone()
	}
	for k, v := range s.ComboInstances {
		out.ComboInstances[k] = v.Clone()
	}
	for k, v := range s.SwapLists {
		out.SwapLists[k] = v.Clone()
	}
	for k, v := range s.SwapRules {
		out.SwapRules[k] = v
	}
	for k, v := range s.StoreActive {
		out.StoreActive[k] = v
	}
	for k, v := range s.StoreSuppliers {
		out.StoreSuppliers[k] = v.Clone()
	}
	for k, v := range s.Content {
		out.Content[k] = v
	}
	for k, v := range s.Images {
		out.Images[k] = v
	}
	for k, v := range s.TenantNotes {
		out.TenantNotes[k] = v
	}
	return out
}

// Catalog busca un catálogo por ID.
func (s *State) Catalog(id string) (Catalog, bool) {
	c, ok := s.Catalogs[id]
	return c, ok
}

// StoreByName busca una tienda del catálogo global por país y nombre.
func (s *State) StoreByName(country, name string) (Store, bool) {
	st, ok := s.Stores[StoreKey{Country: country, Name: name}]
	return st, ok
}

// IsStoreActive devuelve el estado activo de la tienda (true por defecto).
func (s *State) IsStoreActive(k StoreKey) bool {
	active, ok := s.StoreActive[k]
	return !ok || active
}

// TenantCatalog devuelve la personalización del tenant sobre el catálogo.
func (s *State) TenantCatalog(k TenantCatalogKey) (TenantCatalogConfig, bool) {
	c, ok := s.TenantCatalogs[k]
	return c, ok
}

// SupplierData devuelve los datos de proveedores almacenados para la tienda.
func (s *State) SupplierData(k StoreKey) (StoreSupplierData, bool) {
	d, ok := s.StoreSuppliers[k]
	return d, ok
}

// ComboInstancesByCatalog devuelve los combos del catálogo ordenados por nombre.
func (s *State) ComboInstancesByCatalog(catalogID string) []ComboInstance {
	var out []ComboInstance
	for _, c := range s.ComboInstances {
		if c.CatalogID == catalogID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName == out[j].DisplayName {
			return out[i].ID < out[j].ID
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}

// StoresByCountry devuelve las tiendas de un país ordenadas por nombre.
func (s *State) StoresByCountry(country string) []Store {
	var out []Store
	for k, st := range s.Stores {
		if k.Country == country {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BaseCatalogForCountry devuelve el catálogo base del país (el de ID menor si hubiera varios).
func (s *State) BaseCatalogForCountry(country string) (Catalog, bool) {
	var (
		found Catalog
		ok    bool
	)
	for _, c := range s.Catalogs {
		if c.IsBranch || c.Country != country {
			continue
		}
		if !ok || c.ID < found.ID {
			found, ok = c, true
		}
	}
	return found, ok
}
