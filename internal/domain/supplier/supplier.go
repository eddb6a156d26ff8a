// Package supplier contiene las reglas de selección de proveedores por tienda.
// Toda operación termina con Normalize, que restablece los invariantes:
// primario y secundario pertenecen a OfferingSuppliers y son distintos.
package supplier

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// Rango de márgenes generados, en centésimas (1.00 a 15.00).
const (
	minMarginCents = 100
	maxMarginCents = 1500
)

// Generate produce datos de proveedores deterministas para la tienda: el mismo StoreKey
// devuelve siempre el mismo subconjunto (nunca vacío) de proveedores y los mismos márgenes.
func Generate(k entity.StoreKey) entity.StoreSupplierData {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.String()))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	d := entity.StoreSupplierData{
		Discounts:         map[int]decimal.Decimal{},
		OfferingSuppliers: []int{},
	}
	for _, id := range entity.SupplierIDs {
		if rng.Intn(100) < 65 {
			d.OfferingSuppliers = append(d.OfferingSuppliers, id)
		}
	}
	if len(d.OfferingSuppliers) == 0 {
		d.OfferingSuppliers = append(d.OfferingSuppliers, entity.SupplierIDs[rng.Intn(len(entity.SupplierIDs))])
	}
	for _, id := range d.OfferingSuppliers {
		cents := minMarginCents + rng.Intn(maxMarginCents-minMarginCents+1)
		d.Discounts[id] = decimal.New(int64(cents), -2)
	}
	Normalize(&d)
	return d
}

// Best devuelve el proveedor ofertante con mayor margen; empates al ID menor. nil si no hay ninguno.
func Best(d entity.StoreSupplierData) *int {
	var best *int
	var bestMargin decimal.Decimal
	for _, id := range d.OfferingSuppliers {
		m := d.Discounts[id]
		if best == nil || m.GreaterThan(bestMargin) || (m.Equal(bestMargin) && id < *best) {
			v := id
			best, bestMargin = &v, m
		}
	}
	return best
}

// Normalize ordena y depura los ofertantes y repara primario/secundario.
// Sin selección manual el primario es siempre Best. Un primario manual que deja de ofertar
// se reemplaza por Best y la selección vuelve a automática.
func Normalize(d *entity.StoreSupplierData) {
	d.OfferingSuppliers = validIDs(d.OfferingSuppliers)
	if d.Discounts == nil {
		d.Discounts = map[int]decimal.Decimal{}
	}
	for id := range d.Discounts {
		if !d.Offers(id) {
			delete(d.Discounts, id)
		}
	}

	if !d.ManualSelection || d.SelectedSupplier == nil || !d.Offers(*d.SelectedSupplier) {
		d.ManualSelection = false
		d.SelectedSupplier = Best(*d)
	}

	if s := d.SecondarySupplier; s != nil {
		if !d.Offers(*s) || (d.SelectedSupplier != nil && *s == *d.SelectedSupplier) {
			d.SecondarySupplier = nil
		}
	}
}

// AddOffering incorpora un proveedor con su margen.
func AddOffering(d *entity.StoreSupplierData, supplierID int, margin decimal.Decimal) error {
	if err := checkID(supplierID); err != nil {
		return err
	}
	if margin.IsNegative() {
		return fmt.Errorf("%w: margen negativo", domain.ErrInvalidInput)
	}
	if !d.Offers(supplierID) {
		d.OfferingSuppliers = append(d.OfferingSuppliers, supplierID)
	}
	if d.Discounts == nil {
		d.Discounts = map[int]decimal.Decimal{}
	}
	d.Discounts[supplierID] = margin
	Normalize(d)
	return nil
}

// SetDiscount cambia el margen de un proveedor que ya oferta la tienda.
func SetDiscount(d *entity.StoreSupplierData, supplierID int, margin decimal.Decimal) error {
	if err := checkID(supplierID); err != nil {
		return err
	}
	if !d.Offers(supplierID) {
		return fmt.Errorf("%w: proveedor %d", domain.ErrSupplierNotOffering, supplierID)
	}
	return AddOffering(d, supplierID, margin)
}

// RemoveOffering quita un proveedor de los ofertantes.
func RemoveOffering(d *entity.StoreSupplierData, supplierID int) error {
	if !d.Offers(supplierID) {
		return fmt.Errorf("%w: proveedor %d", domain.ErrSupplierNotOffering, supplierID)
	}
	out := make([]int, 0, len(d.OfferingSuppliers))
	for _, id := range d.OfferingSuppliers {
		if id != supplierID {
			out = append(out, id)
		}
	}
	d.OfferingSuppliers = out
	Normalize(d)
	return nil
}

// SetSelected fija el primario manualmente; nil vuelve a la selección automática.
func SetSelected(d *entity.StoreSupplierData, supplierID *int) error {
	if supplierID == nil {
		d.ManualSelection = false
		d.SelectedSupplier = nil
		Normalize(d)
		return nil
	}
	if !d.Offers(*supplierID) {
		return fmt.Errorf("%w: proveedor %d", domain.ErrSupplierNotOffering, *supplierID)
	}
	v := *supplierID
	d.SelectedSupplier = &v
	d.ManualSelection = true
	Normalize(d)
	return nil
}

// SetSecondary fija el proveedor secundario; nil lo quita.
func SetSecondary(d *entity.StoreSupplierData, supplierID *int) error {
	if supplierID == nil {
		d.SecondarySupplier = nil
		Normalize(d)
		return nil
	}
	if !d.Offers(*supplierID) {
		return fmt.Errorf("%w: proveedor %d", domain.ErrSupplierNotOffering, *supplierID)
	}
	if d.SelectedSupplier != nil && *d.SelectedSupplier == *supplierID {
		return fmt.Errorf("%w: el secundario no puede ser el primario", domain.ErrConflict)
	}
	v := *supplierID
	d.SecondarySupplier = &v
	Normalize(d)
	return nil
}

func checkID(id int) error {
	for _, known := range entity.SupplierIDs {
		if known == id {
			return nil
		}
	}
	return fmt.Errorf("%w: proveedor desconocido %d", domain.ErrInvalidInput, id)
}

func validIDs(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, id := range in {
		if seen[id] || checkID(id) != nil {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
