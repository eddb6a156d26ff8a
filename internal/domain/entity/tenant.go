package entity

// Tenant representa un cliente de la plataforma. Inmutable después de creado.
// Global indica acceso a catálogos de cualquier moneda; el resto solo ve la moneda de su país.
type Tenant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Global  bool   `json:"global"`
}

// CanUseCurrency informa si el tenant puede tener asignado un catálogo en esa moneda.
func (t Tenant) CanUseCurrency(currency string) bool {
	if t.Global {
		return true
	}
	return CurrencyForCountry(t.Country) == currency
}
