package plan

import "strings"

// Catalog is the fixed menu of birth-plan themes and their topics. The
// welcome stage offers these as options; users may still name a theme of
// their own, which simply gets an empty description and no topic menu.
type Catalog struct {
	entries []CatalogTheme
}

type CatalogTheme struct {
	Name        string
	Description string
	Topics      []string
}

// DefaultCatalog returns the standard midwife catalogue.
func DefaultCatalog() *Catalog {
	return &Catalog{entries: []CatalogTheme{
		{
			Name:        "Pijnbestrijding",
			Description: "Hoe je wilt omgaan met pijn tijdens de bevalling, van ademhalingstechnieken tot medicatie.",
			Topics:      []string{"Epiduraal", "Lachgas", "Pethidine", "Natuurlijke technieken"},
		},
		{
			Name:        "Bevalomgeving",
			Description: "Waar en in welke sfeer je wilt bevallen: thuis, ziekenhuis of geboortecentrum.",
			Topics:      []string{"Thuisbevalling", "Ziekenhuis", "Badbevalling", "Sfeer en muziek"},
		},
		{
			Name:        "Medische ingrepen",
			Description: "Je wensen rond ingrepen zoals inleiden, knippen of een keizersnede.",
			Topics:      []string{"Inleiden", "Knip", "Keizersnede", "Vacuumverlossing"},
		},
		{
			Name:        "Ondersteuning",
			Description: "Wie je bij de bevalling wilt hebben en welke rol zij spelen.",
			Topics:      []string{"Partner", "Doula", "Familie", "Fotografie"},
		},
		{
			Name:        "Voeding",
			Description: "Je voorkeuren rond de eerste voeding van je baby.",
			Topics:      []string{"Borstvoeding", "Flesvoeding", "Huid-op-huid", "Kolven"},
		},
		{
			Name:        "Kraamtijd",
			Description: "De eerste dagen na de geboorte: kraamzorg, bezoek en rust.",
			Topics:      []string{"Kraamzorg", "Bezoekregeling", "Rust en herstel", "Hechting"},
		},
		{
			Name:        "Onverwachte situaties",
			Description: "Wat je belangrijk vindt als de bevalling anders loopt dan gepland.",
			Topics:      []string{"Spoedkeizersnede", "Couveuse", "Overdracht naar ziekenhuis", "Communicatie"},
		},
	}}
}

// ThemeNames lists the catalogue themes in menu order.
func (c *Catalog) ThemeNames() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	return names
}

// Describe returns the hover description for a theme, or "" for unknown names.
func (c *Catalog) Describe(theme string) string {
	if e := c.find(theme); e != nil {
		return e.Description
	}
	return ""
}

// TopicsFor returns the topic menu of a theme, or nil for unknown names.
func (c *Catalog) TopicsFor(theme string) []string {
	if e := c.find(theme); e != nil {
		return e.Topics
	}
	return nil
}

func (c *Catalog) find(theme string) *CatalogTheme {
	for i := range c.entries {
		if equalFold(c.entries[i].Name, theme) {
			return &c.entries[i]
		}
	}
	return nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
