// Package feed construye el feed XML de catálogo que consumen los partners.
package feed

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
)

// Namespace del feed.
const NsFeed = "urn:catalogos:feed:v1"

var _ ports.FeedBuilder = (*XMLBuilderService)(nil)

// XMLBuilderService arma el documento <CatalogFeed> de la vista efectiva de un tenant.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el XML y el ETag fuerte (SHA-256 hex del XML canónico).
// GeneratedAt no entra al documento: el ETag solo cambia si cambia el contenido.
func (s *XMLBuilderService) Build(_ context.Context, sheet ports.CatalogSheet) ([]byte, string, error) {
	if sheet.Catalog == nil {
		return nil, "", fmt.Errorf("feed: falta el catálogo")
	}
	c := sheet.Catalog

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("CatalogFeed")
	root.CreateAttr("xmlns", NsFeed)
	root.CreateAttr("version", strconv.FormatUint(sheet.Version, 10))

	tenant := root.CreateElement("Tenant")
	tenant.CreateAttr("id", sheet.Tenant.ID)
	tenant.CreateAttr("country", sheet.Tenant.Country)
	tenant.SetText(sheet.Tenant.Name)

	cat := root.CreateElement("Catalog")
	cat.CreateAttr("id", c.ID)
	cat.CreateAttr("currency", c.Currency)
	cat.CreateAttr("country", c.Country)
	if sheet.EventName != "" {
		cat.CreateAttr("event", sheet.EventName)
	}
	cat.CreateElement("Name").SetText(c.Name)
	if c.CatalogFee != nil {
		cat.CreateElement("CatalogFee").SetText(c.CatalogFee.StringFixed(2))
	}

	stores := cat.CreateElement("Stores")
	for i, st := range c.Stores {
		el := stores.CreateElement("Store")
		el.CreateAttr("position", strconv.Itoa(i+1))
		el.CreateElement("Name").SetText(st.Name)
		if d, ok := c.StoreDiscounts[st.Name]; ok {
			el.CreateElement("Discount").SetText(d.StringFixed(2))
		}
		if f, ok := c.StoreFees[st.Name]; ok {
			el.CreateElement("Fee").SetText(f.StringFixed(2))
		}
		if css, ok := c.StoreCSS[st.Name]; ok && css != "" {
			el.CreateElement("CSS").SetText(css)
		}
		products := el.CreateElement("Products")
		for _, p := range st.Products {
			pe := products.CreateElement("Product")
			pe.CreateAttr("id", p.ID)
			pe.CreateAttr("category", p.Category)
			pe.CreateElement("Name").SetText(p.Name)
			pe.CreateElement("Price").SetText(p.Price.StringFixed(2))
		}
	}

	if len(sheet.Combos) > 0 {
		combos := cat.CreateElement("Combos")
		for _, cb := range sheet.Combos {
			el := combos.CreateElement("Combo")
			el.CreateAttr("id", cb.ID)
			el.CreateElement("Name").SetText(cb.Name)
			names := el.CreateElement("Stores")
			for _, n := range cb.StoreNames {
				names.CreateElement("Store").SetText(n)
			}
			dens := el.CreateElement("Denominations")
			for _, d := range cb.Denominations {
				dens.CreateElement("Amount").SetText(d.StringFixed(2))
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar XML: %w", err)
	}
	etag, err := Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, etag, nil
}

// Digest devuelve el SHA-256 (hex) de la forma canónica (C14N) del XML.
// El orden de atributos, las comillas y los elementos vacíos no alteran el digest.
func Digest(xmlBytes []byte) (string, error) {
	canonical, err := canonicalizeXML(xmlBytes)
	if err != nil {
		return "", fmt.Errorf("feed: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
