package entity

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// SupplierIDs proveedores disponibles en la plataforma.
var SupplierIDs = []int{1, 2, 3, 4, 5}

// SupplierNames nombres de presentación de cada proveedor.
var SupplierNames = map[int]string{
	1: "Blackhawk",
	2: "InComm",
	3: "Tango",
	4: "Prezzee",
	5: "Runa",
}

// StoreSupplierData guarda qué proveedores ofrecen una tienda y con qué margen.
// Invariantes: SelectedSupplier y SecondarySupplier pertenecen a OfferingSuppliers y son distintos.
type StoreSupplierData struct {
	SelectedSupplier  *int                    `json:"selected_supplier"`
	SecondarySupplier *int                    `json:"secondary_supplier"`
	Discounts         map[int]decimal.Decimal `json:"discounts"` // supplierID → margen
	OfferingSuppliers []int                   `json:"offering_suppliers"`
	ManualSelection   bool                    `json:"manual_selection"`
}

// Offers informa si el proveedor ofrece la tienda.
func (d StoreSupplierData) Offers(supplierID int) bool {
	for _, id := range d.OfferingSuppliers {
		if id == supplierID {
			return true
		}
	}
	return false
}

// Clone copia profunda.
func (d StoreSupplierData) Clone() StoreSupplierData {
	out := d
	if d.SelectedSupplier != nil {
		v := *d.SelectedSupplier
		out.SelectedSupplier = &v
	}
	if d.SecondarySupplier != nil {
		v := *d.SecondarySupplier
		out.SecondarySupplier = &v
	}
	out.Discounts = maps.Clone(d.Discounts)
	out.OfferingSuppliers = slices.Clone(d.OfferingSuppliers)
	return out
}
