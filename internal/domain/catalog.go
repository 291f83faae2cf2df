package domain

import "strings"

// OtherBucket é a coluna usada para produtos não mapeados no catálogo
const OtherBucket = "Other"

// ProductCatalogEntry é uma entrada estática do catálogo de produtos.
// ExcludedFromARR é uma flag independente de Recurring: existem produtos
// recorrentes que por exceção de negócio nunca entram no ARR (iVerify Monthly
// Credits e Kipu API).
type ProductCatalogEntry struct {
	Name            string
	Recurring       bool
	IncludeInARR    bool
	ExcludedFromARR bool
	// MonthlyFactor ajusta o MRR de itens precificados fora do padrão mensal
	// (ex.: itens de consumo por unidade). 1 para o caso normal.
	MonthlyFactor float64
}

// ProductCatalog resolve nomes brutos de produto para entradas canônicas via
// lookup exato após normalização, com tabela explícita de aliases. Sem
// matching por substring: aliases novos do price book entram na tabela.
type ProductCatalog struct {
	entries      []*ProductCatalogEntry
	byNormalized map[string]*ProductCatalogEntry
}

// arrProductColumns são as colunas canônicas de ARR, na ordem de exibição
var arrProductColumns = []string{
	"Dazos CRM Platform (Legacy)",
	"Dazos CRM Platform (Includes 5 Seats)",
	"Billing Company CRM Platform (Includes 5 Seats)",
	"Additional CRM Seats",
	"Marketing Reports Platform Fee (Includes 1 EIN)",
	"IQ Platform Fee (Includes 1 EIN)",
	"Additional IQ/MR EINs",
	"iCampaign Platform",
	"Premium Support",
}

// aliases conhecidos do price book: variante bruta -> nome canônico
var productAliases = map[string]string{
	"additional iqmr eins":   "Additional IQ/MR EINs",
	"verify monthly credits": "iVerify Monthly Credits",
}

// DefaultProductCatalog monta o catálogo com as colunas de ARR e as duas
// entradas categoricamente excluídas do ARR.
func DefaultProductCatalog() *ProductCatalog {
	c := &ProductCatalog{
		byNormalized: make(map[string]*ProductCatalogEntry),
	}

	for _, name := range arrProductColumns {
		c.add(&ProductCatalogEntry{
			Name:          name,
			Recurring:     true,
			IncludeInARR:  true,
			MonthlyFactor: 1,
		})
	}

	// Exceções de negócio: recorrentes, mas nunca contam para o ARR
	c.add(&ProductCatalogEntry{Name: "iVerify Monthly Credits", Recurring: true, ExcludedFromARR: true, MonthlyFactor: 1})
	c.add(&ProductCatalogEntry{Name: "Kipu API", Recurring: true, ExcludedFromARR: true, MonthlyFactor: 1})

	for alias, canonical := range productAliases {
		if entry, ok := c.byNormalized[normalizeKey(canonical)]; ok {
			c.byNormalized[normalizeKey(alias)] = entry
		}
	}

	return c
}

func (c *ProductCatalog) add(entry *ProductCatalogEntry) {
	c.entries = append(c.entries, entry)
	c.byNormalized[normalizeKey(entry.Name)] = entry
}

// Columns retorna as colunas de ARR na ordem de exibição (sem as excluídas)
func (c *ProductCatalog) Columns() []string {
	columns := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.IncludeInARR && !entry.ExcludedFromARR {
			columns = append(columns, entry.Name)
		}
	}
	return columns
}

// Resolve busca a entrada canônica para um nome bruto já extraído do CRM.
// Retorna (nil, false) quando o produto não existe no catálogo; o chamador
// decide o destino (bucket "Other").
func (c *ProductCatalog) Resolve(raw string) (*ProductCatalogEntry, bool) {
	key := normalizeKey(NormalizeProductName(raw))
	if key == "" {
		return nil, false
	}
	entry, ok := c.byNormalized[key]
	return entry, ok
}

// NormalizeProductName extrai o nome do produto do valor bruto do CRM.
// Linhas de oportunidade chegam como "Conta - Renewal - Data Kipu API";
// o produto é o segmento após o último " - ".
func NormalizeProductName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if idx := strings.LastIndex(s, " - "); idx >= 0 {
		if tail := strings.TrimSpace(s[idx+len(" - "):]); tail != "" {
			s = tail
		}
	}
	return s
}

// normalizeKey colapsa espaços e aplica case-fold para lookup exato
func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
