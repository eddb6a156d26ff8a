package catalog

import "github.com/shopspring/decimal"

// overlayDecimals: base como punto de partida, overrides ganan clave por clave.
func overlayDecimals(base, overrides map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func overlayStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// overlayEventDiscounts aplica los descuentos de un evento. Un valor exactamente 0
// significa "sin override": se conserva el descuento base.
func overlayEventDiscounts(base, event map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(base)+len(event))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range event {
		if v.IsZero() {
			continue
		}
		out[k] = v
	}
	return out
}
